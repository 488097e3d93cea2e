// internal/platform/di/secret_provider_sm.go
package di

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	"heavendesigns/internal/infra/config"
)

var errStripeKeyNotConfigured = errors.New("di: stripe secret key not configured (set STRIPE_SECRET_KEY or GCP_PROJECT_ID + STRIPE_SECRET_NAME)")

// resolveStripeKey resolves the Stripe API key: env first, Secret Manager
// fallback (projects/{project}/secrets/{name}/versions/latest).
func resolveStripeKey(ctx context.Context, cfg *config.Config) (string, error) {
	if k := strings.TrimSpace(cfg.StripeSecretKey); k != "" {
		return k, nil
	}

	prj := strings.TrimSpace(cfg.GCPProjectID)
	name := strings.TrimSpace(cfg.StripeSecretName)
	if prj == "" || name == "" {
		return "", errStripeKeyNotConfigured
	}

	sm, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", errors.New("di: secret manager client init failed: " + err.Error())
	}
	defer func() { _ = sm.Close() }()

	full := "projects/" + prj + "/secrets/" + name + "/versions/latest"
	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: full})
	if err != nil {
		return "", errors.New("di: AccessSecretVersion failed (" + full + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("di: empty secret payload (" + full + ")")
	}

	key := strings.TrimSpace(string(resp.Payload.Data))
	if key == "" {
		return "", errors.New("di: secret payload is blank (" + full + ")")
	}
	return key, nil
}
