package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/feedbackwall/feedback-service/internal/feedback/handler"
	"github.com/feedbackwall/feedback-service/internal/feedback/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := gin.New()
	handler.RegisterFeedbackRoutes(g, service.NewMemoryService())
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientSubmitAndList(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL + "/")
	ctx := context.Background()

	rec, err := c.Submit(ctx, "Ada", "Great tool!")
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, "Ada", rec.Name)

	_, err = c.Submit(ctx, "Bob", "Also nice")
	require.NoError(t, err)

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Bob", list[0].Name)
	require.Equal(t, rec.ID, list[1].ID)
}

func TestClientSurfacesServiceMessage(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL)

	_, err := c.Submit(context.Background(), "", "x")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Please provide a name", apiErr.Message)
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).List(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Equal(t, "Bad Gateway", apiErr.Message)
}

type recordingTransport struct {
	methods []string
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.methods = append(r.methods, req.Method+" "+req.URL.Path)
	return http.DefaultTransport.RoundTrip(req)
}

func TestClientWithHTTPClient(t *testing.T) {
	srv := newServer(t)
	rt := &recordingTransport{}
	c := New(srv.URL).WithHTTPClient(&http.Client{Transport: rt})
	ctx := context.Background()

	_, err := c.Submit(ctx, "Ada", "hi")
	require.NoError(t, err)
	_, err = c.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"POST /feedback", "GET /feedback"}, rt.methods)
}
