package services

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"smartrent-http-service/internal/infrastructure/config"
)

// How long fetched provider certificates are reused before refreshing.
const certCacheTTL = 1 * time.Hour

// FederatedIdentity is the claimed identity extracted from a verified
// provider token, before any local account lookup
type FederatedIdentity struct {
	Subject string
	Email   string
	Name    string
}

// InterfaceFederatedVerifier verifies tokens issued by the external identity
// provider. VerifyIdentity is the restricted mode used during registration
// hand-off: it never touches the local user store.
type InterfaceFederatedVerifier interface {
	Enabled() bool
	VerifyIdentity(tokenString string) (*FederatedIdentity, error)
}

// FederatedVerifier validates RS256 tokens against the provider's published
// x509 certificates, keyed by kid
type FederatedVerifier struct {
	enabled  bool
	issuer   string
	audience string
	certsURL string
	client   *http.Client

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

type federatedClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// NewFederatedVerifier creates a verifier from the provider configuration
func NewFederatedVerifier(cfg *config.Config) *FederatedVerifier {
	enabled := cfg.IdentityProviderEnabled && cfg.IdentityProviderCertsURL != ""
	return &FederatedVerifier{
		enabled:  enabled,
		issuer:   cfg.IdentityProviderIssuer,
		audience: cfg.IdentityProviderAudience,
		certsURL: cfg.IdentityProviderCertsURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		keys:     map[string]*rsa.PublicKey{},
	}
}

// Enabled reports whether the federated path is configured
func (v *FederatedVerifier) Enabled() bool {
	return v.enabled
}

// VerifyIdentity checks signature, issuer, audience and expiry, and returns
// the claimed identity
func (v *FederatedVerifier) VerifyIdentity(tokenString string) (*FederatedIdentity, error) {
	if !v.enabled {
		return nil, errors.New("federated identity provider is not configured")
	}

	claims := &federatedClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid federated token")
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, fmt.Errorf("unexpected token issuer: %s", claims.Issuer)
	}
	if v.audience != "" && !claims.VerifyAudience(v.audience, true) {
		return nil, errors.New("unexpected token audience")
	}
	if claims.Subject == "" {
		return nil, errors.New("federated token has no subject")
	}

	return &FederatedIdentity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

// keyFunc resolves the RSA public key for the token's kid header
func (v *FederatedVerifier) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return nil, errors.New("federated token has no kid header")
	}

	key, err := v.publicKey(kid)
	if err != nil {
		return nil, err
	}
	return key, nil
}

// publicKey returns the cached key for kid, refreshing the cert set when the
// cache is stale or the kid is unknown (providers rotate keys)
func (v *FederatedVerifier) publicKey(kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok && time.Since(v.fetchedAt) < certCacheTTL {
		return key, nil
	}

	if err := v.refreshKeysLocked(); err != nil {
		return nil, err
	}

	key, ok := v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no provider certificate for kid %s", kid)
	}
	return key, nil
}

// refreshKeysLocked fetches the provider's cert map (kid -> PEM certificate)
func (v *FederatedVerifier) refreshKeysLocked() error {
	resp, err := v.client.Get(v.certsURL)
	if err != nil {
		return fmt.Errorf("fetch provider certificates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch provider certificates: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var certs map[string]string
	if err := json.Unmarshal(body, &certs); err != nil {
		return fmt.Errorf("decode provider certificates: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		block, _ := pem.Decode([]byte(pemCert))
		if block == nil {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			continue
		}
		if pub, ok := cert.PublicKey.(*rsa.PublicKey); ok {
			keys[kid] = pub
		}
	}
	if len(keys) == 0 {
		return errors.New("provider certificate set is empty")
	}

	v.keys = keys
	v.fetchedAt = time.Now()
	return nil
}
