package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// Auther coordinates the credential store, the password hasher, and the
// token service. It is the only type with externally visible auth
// operations; everything it returns is a value the caller inspects.
type Auther struct {
	store           UserStore
	hasher          PasswordAuthenticator
	tokenService    TokenService
	signingKey      []byte
	tokenExpiration int
	issuer          string
	audience        []string
	logger          Logger
	activitySink    ActivitySink
	claimsDecorator ClaimsDecorator
}

// NewAuthenticator returns a new Authenticator. A missing signing secret
// is a configuration fault, reported here so the process fails at
// startup instead of rejecting every request later.
func NewAuthenticator(store UserStore, opts Config) (*Auther, error) {
	if store == nil {
		return nil, goerrors.New("user store is required", goerrors.CategoryBadInput)
	}

	signingKey := opts.GetSigningKey()
	if signingKey == "" {
		return nil, goerrors.New("signing secret is required", goerrors.CategoryBadInput).
			WithTextCode("MISSING_SIGNING_SECRET")
	}

	tokenExpiration := opts.GetTokenExpiration()
	if tokenExpiration <= 0 {
		tokenExpiration = defaultTokenExpiration
	}

	tokenService := NewTokenService(
		[]byte(signingKey),
		tokenExpiration,
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		store:           store,
		hasher:          bcryptHasher{},
		tokenService:    tokenService,
		signingKey:      []byte(signingKey),
		tokenExpiration: tokenExpiration,
		issuer:          opts.GetIssuer(),
		audience:        opts.GetAudience(),
		logger:          defLogger{},
		activitySink:    noopActivitySink{},
		claimsDecorator: noopClaimsDecorator{},
	}, nil
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	// Update the TokenService logger as well
	s.tokenService = NewTokenService(
		s.signingKey,
		s.tokenExpiration,
		s.issuer,
		s.audience,
		logger,
	)
	return s
}

// WithPasswordAuthenticator swaps the hashing strategy.
func (s *Auther) WithPasswordAuthenticator(hasher PasswordAuthenticator) *Auther {
	if hasher != nil {
		s.hasher = hasher
	}
	return s
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (s *Auther) WithActivitySink(sink ActivitySink) *Auther {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

// WithClaimsDecorator configures a ClaimsDecorator for enriching JWTs.
func (s *Auther) WithClaimsDecorator(decorator ClaimsDecorator) *Auther {
	s.claimsDecorator = normalizeClaimsDecorator(decorator)
	return s
}

// WithTokenService sets a custom token codec.
func (s *Auther) WithTokenService(service TokenService) *Auther {
	if service != nil {
		s.tokenService = service
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login authenticates a username/password pair and mints a token on
// success. Unknown usernames and wrong passwords produce the same
// ErrInvalidCredentials; a deactivated account is reported separately,
// after the password check, matching the platform's established
// behavior.
func (s *Auther) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)

	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.emitAuthEvent(ctx, ActivityEventLoginFailure, 0, username, map[string]any{
				"reason": TextCodeInvalidCredentials,
			})
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login user lookup failed", "error", err)
		return nil, ensureStorageError(err)
	}

	if err := s.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		s.emitAuthEvent(ctx, ActivityEventLoginFailure, user.ID, username, map[string]any{
			"reason": TextCodeInvalidCredentials,
		})
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.emitAuthEvent(ctx, ActivityEventLoginFailure, user.ID, username, map[string]any{
			"reason": TextCodeAccountInactive,
		})
		return nil, ErrAccountInactive
	}

	identity := identityFromUser(user)

	token, err := s.generateToken(ctx, identity)
	if err != nil {
		s.emitAuthEvent(ctx, ActivityEventLoginFailure, user.ID, username, map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}

	s.touchLastLogin(ctx, user)

	s.emitAuthEvent(ctx, ActivityEventLoginSuccess, user.ID, username, nil)

	return &AuthResult{Token: token, Identity: identity}, nil
}

// Register creates an account and logs it in, minting a token exactly as
// Login does. Username and email conflicts are checked up front; a
// conflict reported by the store on create (two registrations racing)
// maps to the same ErrUsernameTaken/ErrEmailTaken values.
func (s *Auther) Register(ctx context.Context, registration Registration, password string) (*AuthResult, error) {
	if err := registration.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.store.FindByUsername(ctx, registration.Username); err == nil {
		s.emitAuthEvent(ctx, ActivityEventRegisterFailure, 0, registration.Username, map[string]any{
			"reason": TextCodeUsernameTaken,
		})
		return nil, ErrUsernameTaken
	} else if !goerrors.IsNotFound(err) {
		return nil, ensureStorageError(err)
	}

	if _, err := s.store.FindByEmail(ctx, registration.Email); err == nil {
		s.emitAuthEvent(ctx, ActivityEventRegisterFailure, 0, registration.Username, map[string]any{
			"reason": TextCodeEmailTaken,
		})
		return nil, ErrEmailTaken
	} else if !goerrors.IsNotFound(err) {
		return nil, ensureStorageError(err)
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, err
	}

	role := RoleReadOnly
	if registration.Role != "" {
		role, _ = ParseRole(registration.Role)
	}

	now := time.Now()
	user := &User{
		Username:     registration.Username,
		Email:        registration.Email,
		FirstName:    registration.FirstName,
		LastName:     registration.LastName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    &now,
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken) {
			s.emitAuthEvent(ctx, ActivityEventRegisterFailure, 0, registration.Username, map[string]any{
				"reason": "store conflict",
			})
			return nil, err
		}
		s.logger.Error("Register create failed", "error", err)
		return nil, ensureStorageError(err)
	}

	identity := identityFromUser(created)

	token, err := s.generateToken(ctx, identity)
	if err != nil {
		return nil, err
	}

	s.emitAuthEvent(ctx, ActivityEventRegisterSuccess, created.ID, created.Username, nil)

	return &AuthResult{Token: token, Identity: identity}, nil
}

// ChangePassword rotates a password after verifying the old one. The
// result is deliberately coarse: a missing identity and a wrong old
// password both come back as plain false. Only a store outage or a
// hashing failure produces a non-nil error. Tokens minted before the
// change stay valid until their own expiry.
func (s *Auther) ChangePassword(ctx context.Context, identityID int64, oldPassword, newPassword string) (bool, error) {
	user, err := s.store.FindByID(ctx, identityID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return false, nil
		}
		return false, ensureStorageError(err)
	}

	if err := s.hasher.ComparePasswordAndHash(oldPassword, user.PasswordHash); err != nil {
		s.emitAuthEvent(ctx, ActivityEventPasswordRejected, user.ID, user.Username, nil)
		return false, nil
	}

	hash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return false, err
	}

	now := time.Now()
	user.PasswordHash = hash
	user.UpdatedAt = &now

	if _, err := s.store.Update(ctx, user); err != nil {
		if goerrors.IsNotFound(err) {
			return false, nil
		}
		return false, ensureStorageError(err)
	}

	s.emitAuthEvent(ctx, ActivityEventPasswordChanged, user.ID, user.Username, nil)

	return true, nil
}

// ResolveIdentity verifies the token and re-fetches the current record
// for the embedded id, so the caller sees present account state rather
// than a snapshot from mint time.
func (s *Auther) ResolveIdentity(ctx context.Context, token string) (Identity, error) {
	claims, err := s.tokenService.Validate(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := s.store.FindByID(ctx, claims.UserID())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, ensureStorageError(err)
	}

	return identityFromUser(user), nil
}

// IsTokenValid is the pure codec-level check: signature and expiry only,
// no store round-trip. It does not re-check the active flag; callers
// that need account-state freshness must use ResolveIdentity.
func (s *Auther) IsTokenValid(token string) bool {
	_, err := s.tokenService.Validate(token)
	return err == nil
}

// generateToken builds claims for the identity, lets the decorator
// enrich extensions, and signs. Identity claims are pinned by snapshot
// so a decorator cannot alter who the token is for.
func (s *Auther) generateToken(ctx context.Context, identity Identity) (string, error) {
	claims := s.newJWTClaims(identity)
	snapshot := captureImmutableClaims(claims)

	decorator := normalizeClaimsDecorator(s.claimsDecorator)
	if err := decorator.Decorate(ctx, identity, claims); err != nil {
		s.logger.Error("claims decorator failed", "error", err)
		return "", err
	}

	if err := snapshot.validate(claims); err != nil {
		s.logger.Error("claims decorator mutated immutable claims", "error", err)
		return "", err
	}

	return s.tokenService.SignClaims(claims)
}

func (s *Auther) newJWTClaims(identity Identity) *JWTClaims {
	now := time.Now()

	var aud jwt.ClaimStrings
	if len(s.audience) > 0 {
		aud = make(jwt.ClaimStrings, len(s.audience))
		copy(aud, s.audience)
	}

	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   formatIdentityID(identity.ID()),
			Audience:  aud,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenExpiration) * time.Hour)),
		},
		UID:       identity.ID(),
		UserName:  identity.Username(),
		UserEmail: identity.Email(),
		UserRole:  identity.Role(),
	}

	ensureTokenID(&claims.RegisteredClaims)

	return claims
}

// touchLastLogin stamps last_login_at best-effort; the login already
// succeeded, so a failed stamp is logged and swallowed.
func (s *Auther) touchLastLogin(ctx context.Context, user *User) {
	now := time.Now()
	record := *user
	record.LastLoginAt = &now

	if _, err := s.store.Update(ctx, &record); err != nil {
		s.logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}
}

func (s *Auther) emitAuthEvent(ctx context.Context, eventType ActivityEventType, userID int64, username string, metadata map[string]any) {
	sink := normalizeActivitySink(s.activitySink)
	event := ActivityEvent{
		EventType:  eventType,
		UserID:     userID,
		Username:   username,
		Metadata:   metadata,
		OccurredAt: time.Now(),
	}

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if err := sink.Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record error", "error", err)
	}
}

// authIdentity is the read-only identity view handed back to callers
type authIdentity struct {
	id       int64
	username string
	email    string
	role     string
	active   bool
}

func identityFromUser(user *User) authIdentity {
	return authIdentity{
		id:       user.ID,
		username: user.Username,
		email:    user.Email,
		role:     string(user.Role),
		active:   user.IsActive,
	}
}

func (a authIdentity) ID() int64 {
	return a.id
}

func (a authIdentity) Username() string {
	return a.username
}

func (a authIdentity) Email() string {
	return a.email
}

func (a authIdentity) Role() string {
	return a.role
}

// IsActive reports the active flag as of the store read that produced
// this identity, not as of token mint time.
func (a authIdentity) IsActive() bool {
	return a.active
}

var _ Identity = authIdentity{}
var _ Authenticator = (*Auther)(nil)
