package email

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	// Local Packages
	config "swipepoint/config"
	errors "swipepoint/errors"
	models "swipepoint/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMailtrapConfig(url string) config.Mailtrap {
	return config.Mailtrap{
		APIURL:    url,
		APIToken:  "test-token",
		FromEmail: "hello@example.com",
		FromName:  "SwipePoint",
		Category:  "SwipePoint Email",
	}
}

func TestMailtrapSend(t *testing.T) {
	var got mailtrapPayload
	var auth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewMailtrapClient(testMailtrapConfig(ts.URL))
	err := client.Send(context.Background(), "jane@payer.test", "Receipt", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", auth)
	assert.Equal(t, "hello@example.com", got.From.Email)
	require.Len(t, got.To, 1)
	assert.Equal(t, "jane@payer.test", got.To[0].Email)
	assert.Equal(t, "Receipt", got.Subject)
	assert.Equal(t, "SwipePoint Email", got.Category)
}

func TestMailtrapSendUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewMailtrapClient(testMailtrapConfig(ts.URL))
	err := client.Send(context.Background(), "jane@payer.test", "Receipt", "<p>hi</p>")
	require.Error(t, err)
	assert.Equal(t, errors.Upstream, errors.KindOf(err))
}

func TestMailtrapSendWithoutCredentials(t *testing.T) {
	client := NewMailtrapClient(config.Mailtrap{})
	err := client.Send(context.Background(), "jane@payer.test", "Receipt", "<p>hi</p>")
	require.Error(t, err)
	assert.Equal(t, errors.Upstream, errors.KindOf(err))
}

func TestReceiptBody(t *testing.T) {
	body := ReceiptBody(models.Payment{
		Reference: "TXN-1",
		Firstname: "Jane",
		Lastname:  "Doe",
		Amount:    2000,
		Fee:       200,
		NetAmount: 1800,
		Status:    models.StatusSuccess,
	})

	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "TXN-1")
	assert.Contains(t, body, "2000.00")
	assert.Contains(t, body, "1800.00")
}
