package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"creatorhub/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, name) }
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hb := &handlers.HandlerBundle{
		StartDraft: named("start"), GetDraft: named("get"), CancelDraft: named("cancel"),
		UpdateServices: named("services"), UpdateCampaign: named("campaign"),
		UploadAttachment: named("upload"), RemoveAttachment: named("remove"),
		UpdateContact: named("contact"), Advance: named("advance"), Retreat: named("retreat"),
		Quote: named("quote"), SubmitPayment: named("pay"), PaymentCallback: named("callback"),
		ResetPayment: named("reset"), GetRecord: named("record"), UpdateRecordStatus: named("status"),
		Health: named("health"),
	}
	r := gin.New()
	require.NotPanics(t, func() { RegisterRoutes(r, hb, "token") })

	cases := []struct {
		method, path, auth, want string
		code                     int
	}{
		{http.MethodPost, "/api/drafts", "", "start", http.StatusOK},
		{http.MethodGet, "/api/drafts/d1", "", "get", http.StatusOK},
		{http.MethodPut, "/api/drafts/d1/contact", "", "contact", http.StatusOK},
		{http.MethodDelete, "/api/drafts/d1/attachment", "", "remove", http.StatusOK},
		{http.MethodPost, "/api/drafts/d1/payment", "", "pay", http.StatusOK},
		{http.MethodPost, "/api/drafts/d1/payment/callback", "", "callback", http.StatusOK},
		{http.MethodGet, "/health", "", "health", http.StatusOK},
		{http.MethodGet, "/api/admin/records/campaign/txn_1", "Bearer token", "record", http.StatusOK},
		{http.MethodPatch, "/api/admin/records/campaign/txn_1/status", "", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.auth != "" {
			req.Header.Set("Authorization", tc.auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.code, w.Code, "%s %s", tc.method, tc.path)
		if tc.want != "" {
			assert.Equal(t, tc.want, w.Body.String(), "%s %s", tc.method, tc.path)
		}
	}
}
