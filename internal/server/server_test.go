package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	certdomain "github.com/gdg-oncampus/certhub/internal/certificate/domain"
	"github.com/gdg-oncampus/certhub/internal/config"
	"github.com/gdg-oncampus/certhub/internal/identity"
	issuerdomain "github.com/gdg-oncampus/certhub/internal/issuer/domain"
	templatedomain "github.com/gdg-oncampus/certhub/internal/template/domain"
	"github.com/gdg-oncampus/certhub/pkg/db/pagination"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIssuerSvc struct {
	lastCaller identity.Caller
	resolve    *issuerdomain.ResolveResult
	issuer     *issuerdomain.Issuer
	err        error
}

func (f *fakeIssuerSvc) Resolve(ctx context.Context, caller identity.Caller) (*issuerdomain.ResolveResult, error) {
	f.lastCaller = caller
	if f.err != nil {
		return nil, f.err
	}
	return f.resolve, nil
}

func (f *fakeIssuerSvc) Get(ctx context.Context, ocid string) (*issuerdomain.Issuer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.issuer, nil
}

func (f *fakeIssuerSvc) UpdateProfile(ctx context.Context, ocid string, req issuerdomain.UpdateProfileRequest) (*issuerdomain.Issuer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.issuer, nil
}

type fakeCertSvc struct {
	validation *certdomain.ValidationResult
	create     *certdomain.CreateResult
	err        error
}

func (f *fakeCertSvc) Create(ctx context.Context, ocid string, req certdomain.CreateRequest) (*certdomain.CreateResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.create, nil
}

func (f *fakeCertSvc) CreateBatch(ctx context.Context, ocid string, reqs []certdomain.CreateRequest) (*certdomain.BatchResult, error) {
	return nil, f.err
}

func (f *fakeCertSvc) ListByIssuer(ctx context.Context, ocid string, page pagination.Page) (*certdomain.ListResponse, error) {
	return nil, f.err
}

func (f *fakeCertSvc) Validate(ctx context.Context, uniqueID string) (*certdomain.ValidationResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.validation, nil
}

type fakeTemplateSvc struct {
	err error
}

func (f *fakeTemplateSvc) List(ctx context.Context, ocid string) (*templatedomain.ListResponse, error) {
	return &templatedomain.ListResponse{}, f.err
}

func (f *fakeTemplateSvc) Get(ctx context.Context, ocid string, typ templatedomain.Type, name string) (*templatedomain.Response, error) {
	return nil, f.err
}

func (f *fakeTemplateSvc) Upsert(ctx context.Context, ocid string, req templatedomain.UpsertRequest) (*templatedomain.Response, error) {
	return nil, f.err
}

func (f *fakeTemplateSvc) Delete(ctx context.Context, ocid string, id string) error {
	return f.err
}

func (f *fakeTemplateSvc) SetDefault(ctx context.Context, ocid string, id string) (*templatedomain.Response, error) {
	return nil, f.err
}

func newTestServer(issuerSvc issuerdomain.Service, certSvc certdomain.Service, templateSvc templatedomain.Service) *Server {
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:         engine,
		Cfg:         config.Config{HTTPAddr: ":0"},
		IssuerSvc:   issuerSvc,
		CertSvc:     certSvc,
		TemplateSvc: templateSvc,
	})
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("X-Authentik-Uid", "ocid-test")
	req.Header.Set("X-Authentik-Email", "jordan.lee@campus.dev")
	req.RemoteAddr = "203.0.113.7:44321"
	return req
}

func TestIdentityRequiredRejectsMissingUID(t *testing.T) {
	s := newTestServer(&fakeIssuerSvc{}, &fakeCertSvc{}, &fakeTemplateSvc{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.RemoteAddr = "203.0.113.8:44321"
	rec := doRequest(s, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "unauthorized", body.Error.Type)
}

func TestIdentityRequiredRejectsMissingEmail(t *testing.T) {
	issuerSvc := &fakeIssuerSvc{}
	s := newTestServer(issuerSvc, &fakeCertSvc{}, &fakeTemplateSvc{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("X-Authentik-Uid", "ocid-test")
	req.RemoteAddr = "203.0.113.12:44321"
	rec := doRequest(s, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "unauthorized", body.Error.Type)
	// The issuer service must never see a caller without an email.
	require.Empty(t, issuerSvc.lastCaller.OCID)
}

func TestIdentityDerivesNameFromEmail(t *testing.T) {
	issuerSvc := &fakeIssuerSvc{
		resolve: &issuerdomain.ResolveResult{Issuer: &issuerdomain.Issuer{OCID: "ocid-test"}},
	}
	s := newTestServer(issuerSvc, &fakeCertSvc{}, &fakeTemplateSvc{})

	rec := doRequest(s, authedRequest(http.MethodGet, "/api/auth/me", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ocid-test", issuerSvc.lastCaller.OCID)
	require.Equal(t, "jordan.lee", issuerSvc.lastCaller.Name)
}

func TestMeAnswersCreatedOnFirstLogin(t *testing.T) {
	issuerSvc := &fakeIssuerSvc{
		resolve: &issuerdomain.ResolveResult{
			Issuer:  &issuerdomain.Issuer{OCID: "ocid-test"},
			Created: true,
		},
	}
	s := newTestServer(issuerSvc, &fakeCertSvc{}, &fakeTemplateSvc{})

	rec := doRequest(s, authedRequest(http.MethodGet, "/api/auth/me", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestValidateNotFoundShape(t *testing.T) {
	s := newTestServer(&fakeIssuerSvc{}, &fakeCertSvc{err: certdomain.ErrNotFound}, &fakeTemplateSvc{})

	req := httptest.NewRequest(http.MethodGet, "/api/validate/GDGOC-NOPE-00000000", nil)
	req.RemoteAddr = "203.0.113.9:44321"
	rec := doRequest(s, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, false, body["valid"])
	require.NotContains(t, body, "error")
}

func TestValidateNeverLeaksIssuingIdentity(t *testing.T) {
	view := certdomain.Certificate{
		UniqueID:      "GDGOC-ABC123-DEADBEEF",
		RecipientName: "Public Person",
		EventType:     certdomain.EventTypeWorkshop,
		EventName:     "Go 101",
		IssueDate:     time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC),
		IssuerName:    "Seed Leader",
		OrgName:       "GDGoC Metro State",
		GeneratedBy:   "ocid-secret",
	}
	public := view.Public()
	s := newTestServer(&fakeIssuerSvc{}, &fakeCertSvc{
		validation: &certdomain.ValidationResult{Valid: true, Certificate: &public},
	}, &fakeTemplateSvc{})

	req := httptest.NewRequest(http.MethodGet, "/api/validate/GDGOC-ABC123-DEADBEEF", nil)
	req.RemoteAddr = "203.0.113.10:44321"
	rec := doRequest(s, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "generated_by")
	require.NotContains(t, rec.Body.String(), "ocid-secret")
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"org locked", issuerdomain.ErrOrgNameLocked, http.StatusForbidden, "forbidden"},
		{"login disabled", issuerdomain.ErrLoginDisabled, http.StatusForbidden, "forbidden"},
		{"email conflict", issuerdomain.ErrEmailConflict, http.StatusConflict, "conflict"},
		{"profile incomplete", issuerdomain.ErrProfileIncomplete, http.StatusBadRequest, "validation_error"},
		{"issuer missing", issuerdomain.ErrNotFound, http.StatusNotFound, "not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(&fakeIssuerSvc{err: tc.err}, &fakeCertSvc{}, &fakeTemplateSvc{})

			body := []byte(`{"org_name":"GDGoC Somewhere"}`)
			rec := doRequest(s, authedRequest(http.MethodPut, "/api/profile", body))

			require.Equal(t, tc.wantStatus, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, tc.wantType, resp.Error.Type)
		})
	}
}

func TestDeleteDefaultTemplateForbidden(t *testing.T) {
	s := newTestServer(&fakeIssuerSvc{}, &fakeCertSvc{}, &fakeTemplateSvc{err: templatedomain.ErrDefaultDelete})

	rec := doRequest(s, authedRequest(http.MethodDelete, "/api/templates/email/123", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "forbidden", resp.Error.Type)
	require.Contains(t, resp.Error.Message, "default")
}

func TestDuplicateKeyMapsToConflict(t *testing.T) {
	// A lost race on the template name unique index answers as a
	// conflict rather than an internal error.
	s := newTestServer(&fakeIssuerSvc{}, &fakeCertSvc{}, &fakeTemplateSvc{err: gorm.ErrDuplicatedKey})

	body := []byte(`{"name":"welcome.html","html_content":"<p>hi</p>"}`)
	rec := doRequest(s, authedRequest(http.MethodPost, "/api/templates/email", body))

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "conflict", resp.Error.Type)
}

func TestMalformedJSONAnswersValidationError(t *testing.T) {
	s := newTestServer(&fakeIssuerSvc{}, &fakeCertSvc{}, &fakeTemplateSvc{})

	rec := doRequest(s, authedRequest(http.MethodPut, "/api/profile", []byte("{not json")))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "validation_error", resp.Error.Type)
}

func TestRateLimiterThrottles(t *testing.T) {
	l := newRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("10.0.0.1"))
	}
	require.False(t, l.Allow("10.0.0.1"))

	// Other callers have their own window.
	require.True(t, l.Allow("10.0.0.2"))
}

func TestValidationEndpointRateLimited(t *testing.T) {
	s := newTestServer(&fakeIssuerSvc{}, &fakeCertSvc{err: certdomain.ErrNotFound}, &fakeTemplateSvc{})

	var last int
	for i := 0; i < 31; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/validate/GDGOC-X-00000000", nil)
		req.RemoteAddr = "203.0.113.11:44321"
		last = doRequest(s, req).Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}
