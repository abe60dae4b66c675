//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	catalogclient "github.com/smartinix/order-service/internal/clients/http/catalog"
	pacttest "github.com/smartinix/order-service/test/pact"
)

func TestCatalogContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	example := pacttest.ExampleBookPayload()
	bookBodyMatcher := matchers.Map{
		"isbn":   matchers.Term(pacttest.ExistingISBN, `[0-9]{10,13}`),
		"title":  matchers.Like(example["title"]),
		"author": matchers.Like(example["author"]),
		"price":  matchers.Like(example["price"]),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateBookExists).
		UponReceiving("a request for an existing book").
		WithRequest("GET", "/books/"+pacttest.ExistingISBN).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(bookBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateBookMissing).
		UponReceiving("a request for a missing book").
		WithRequest("GET", "/books/"+pacttest.MissingISBN).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := catalogclient.NewClient(fmt.Sprintf("http://%s:%d", host, config.Port), &http.Client{Timeout: 10 * time.Second})
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		book, err := client.GetBookByISBN(ctx, pacttest.ExistingISBN)
		if err != nil {
			return fmt.Errorf("get existing book: %w", err)
		}
		if book == nil || book.ISBN != pacttest.ExistingISBN {
			return fmt.Errorf("expected book %s, got %+v", pacttest.ExistingISBN, book)
		}

		missing, err := client.GetBookByISBN(ctx, pacttest.MissingISBN)
		if err != nil {
			return fmt.Errorf("get missing book: %w", err)
		}
		if missing != nil {
			return fmt.Errorf("expected missing book to be nil, got %+v", missing)
		}
		return nil
	})
	require.NoError(t, err)
}
