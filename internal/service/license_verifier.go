package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	apperrors "smartvegis/internal/errors"
	"smartvegis/internal/model"
)

// PlaceholderGridlinesKey is the sample key shipped in example env files. It
// is treated the same as no key at all.
const PlaceholderGridlinesKey = "your_gridlines_api_key_here"

var fssaiNumberPattern = regexp.MustCompile(`^[0-9]{14}$`)

var licenseDateLayouts = []string{
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
	"02-01-2006",
	"02/01/2006",
}

// LicenseVerifier verifies FSSAI license numbers against the registry.
type LicenseVerifier interface {
	Verify(ctx context.Context, fssaiNumber string) (*model.VerificationResult, error)
}

// LicenseVerifierConfig configures the Gridlines adapter.
type LicenseVerifierConfig struct {
	URL          string
	APIKey       string
	DefaultState string
	// Production disables the synthetic fallback for failed lookups.
	Production bool
}

type gridlinesVerifier struct {
	client *http.Client
	cfg    LicenseVerifierConfig
	now    func() time.Time
}

// NewLicenseVerifier creates a Gridlines backed license verifier.
func NewLicenseVerifier(client *http.Client, cfg LicenseVerifierConfig) LicenseVerifier {
	return &gridlinesVerifier{client: client, cfg: cfg, now: time.Now}
}

// ValidFSSAINumber reports whether number is exactly 14 ASCII digits.
func ValidFSSAINumber(number string) bool {
	return fssaiNumberPattern.MatchString(number)
}

// Verify looks the license up. Malformed numbers are rejected before any
// network call. Without a usable API key, and on upstream failure outside
// production, a synthetic profile is returned with IsMock set.
func (v *gridlinesVerifier) Verify(ctx context.Context, fssaiNumber string) (*model.VerificationResult, error) {
	if !ValidFSSAINumber(fssaiNumber) {
		return nil, apperrors.NewValidationError("invalid FSSAI number format, must be 14 digits")
	}

	if v.cfg.APIKey == "" || v.cfg.APIKey == PlaceholderGridlinesKey {
		slog.InfoContext(ctx, "gridlines api key not configured, using synthetic license profile")
		return v.mockResult(fssaiNumber), nil
	}

	profile, err := v.lookup(ctx, fssaiNumber)
	if err != nil {
		slog.WarnContext(ctx, "fssai verification failed", "error", err)
		if !v.cfg.Production {
			return v.mockResult(fssaiNumber), nil
		}
		// transport errors carry no registry reason
		var verificationErr *apperrors.VerificationError
		if !errors.As(err, &verificationErr) {
			return nil, &apperrors.VerificationError{}
		}
		return nil, err
	}

	return &model.VerificationResult{Verified: true, Data: profile}, nil
}

func (v *gridlinesVerifier) lookup(ctx context.Context, fssaiNumber string) (*model.LicenseProfile, error) {
	payload, err := json.Marshal(map[string]string{
		"license_number": fssaiNumber,
		"consent":        "Y",
	})
	if err != nil {
		return nil, fmt.Errorf("encode license request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build license request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", v.cfg.APIKey)
	req.Header.Set("X-Auth-Type", "API-Key")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request license: %w", err)
	}
	defer resp.Body.Close()

	var body document
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := ""
		if decodeErr == nil {
			reason = body.str("message")
		}
		return nil, &apperrors.VerificationError{Reason: reason}
	}
	if decodeErr != nil {
		return nil, &apperrors.VerificationError{Reason: "invalid response from FSSAI verification"}
	}

	data := body.object("data")
	if data == nil {
		return nil, &apperrors.VerificationError{Reason: "invalid response from FSSAI verification"}
	}
	if nested := data.object("fssai_data"); nested != nil {
		data = nested
	}
	return v.toProfile(data, fssaiNumber), nil
}

func (v *gridlinesVerifier) toProfile(d document, fssaiNumber string) *model.LicenseProfile {
	return &model.LicenseProfile{
		LicenseNumber: firstNonEmpty(d.str("license_number", "fssai_no"), fssaiNumber),
		CompanyName:   firstNonEmpty(d.str("name", "company_name", "premise_name"), "Vendor Store"),
		Address:       d.str("address", "full_address"),
		State:         firstNonEmpty(d.str("state"), v.cfg.DefaultState),
		District:      d.str("district"),
		Pincode:       d.str("pincode"),
		Taluk:         d.str("taluk"),
		LicenseType:   firstNonEmpty(d.str("type", "license_type"), "FSSAI"),
		Status:        licenseStatus(d),
		IssuedDate:    parseLicenseDate(d.str("issued_date")),
		ExpiryDate:    parseLicenseDate(d.str("expiry_date")),
		Products:      d.list("products"),
	}
}

func licenseStatus(d document) string {
	if status := d.str("status"); status != "" {
		return status
	}
	if active, ok := d["active"].(bool); ok && active {
		return "Active"
	}
	return "Inactive"
}

func parseLicenseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range licenseDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// mockResult builds the synthetic profile. Name and district depend only on
// the license number.
func (v *gridlinesVerifier) mockResult(fssaiNumber string) *model.VerificationResult {
	now := v.now()
	issued := now.AddDate(0, 0, -180)
	expiry := now.AddDate(0, 0, 365)
	return &model.VerificationResult{
		Verified: true,
		IsMock:   true,
		Data: &model.LicenseProfile{
			LicenseNumber: fssaiNumber,
			CompanyName:   "Vendor Store " + fssaiNumber[len(fssaiNumber)-4:],
			Address:       "Market Area, Maharashtra",
			State:         "Maharashtra",
			District:      defaultDistrict,
			Pincode:       "411001",
			LicenseType:   "FSSAI Registration",
			Status:        "Active",
			IssuedDate:    &issued,
			ExpiryDate:    &expiry,
			Products:      []string{"Vegetables", "Fruits"},
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
