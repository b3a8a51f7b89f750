package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beego/beego/v2/server/web/context"
)

func newContext(req *http.Request) (*context.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	ctx := context.NewContext()
	ctx.Reset(rec, req)
	return ctx, rec
}

func TestRequestIDFilter_KeepsIncomingID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/etapas", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	ctx, rec := newContext(req)

	RequestIDFilter(ctx)

	assert.Equal(t, "abc-123", RequestID(ctx))
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestRequestIDFilter_GeneratesID(t *testing.T) {
	ctx, rec := newContext(httptest.NewRequest(http.MethodGet, "/v1/etapas", nil))

	RequestIDFilter(ctx)

	assert.Len(t, RequestID(ctx), 36)
	assert.Equal(t, RequestID(ctx), rec.Header().Get(HeaderRequestID))
	assert.NotPanics(t, func() { AccessLogFilter(ctx) })
}

func TestRequestID_NilContext(t *testing.T) {
	assert.Equal(t, "", RequestID(nil))
}
