package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"time"

	"passkey_auth_ms/config"
	"passkey_auth_ms/domain"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/repository"
	"passkey_auth_ms/util"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IPasskeyService interface {
	RegistrationOptions(userID uint) (*response.RegistrationOptionsResponse, error)
	VerifyRegistration(userID uint, req *request.VerifyRegistrationRequest) error
	AuthenticationOptions(userID uint) (*response.AuthenticationOptionsResponse, error)
	VerifyAuthentication(userID uint, req *request.VerifyAuthenticationRequest) error
}

// webAuthnProvider is the seam to the WebAuthn verification library.
// Challenge generation, signature checks and origin/RP-id matching all
// happen behind it; this service owns challenge persistence, credential
// persistence and the counter policy.
type webAuthnProvider interface {
	BeginRegistration(user webauthn.User, opts ...webauthn.RegistrationOption) (*protocol.CredentialCreation, *webauthn.SessionData, error)
	CreateCredential(user webauthn.User, session webauthn.SessionData, response *protocol.ParsedCredentialCreationData) (*webauthn.Credential, error)
	BeginLogin(user webauthn.User, opts ...webauthn.LoginOption) (*protocol.CredentialAssertion, *webauthn.SessionData, error)
	BeginDiscoverableLogin(opts ...webauthn.LoginOption) (*protocol.CredentialAssertion, *webauthn.SessionData, error)
	ValidateLogin(user webauthn.User, session webauthn.SessionData, response *protocol.ParsedCredentialAssertionData) (*webauthn.Credential, error)
}

type credentialParser interface {
	ParseCredentialCreationResponseBytes(data []byte) (*protocol.ParsedCredentialCreationData, error)
	ParseCredentialRequestResponseBytes(data []byte) (*protocol.ParsedCredentialAssertionData, error)
}

type defaultCredentialParser struct{}

func (defaultCredentialParser) ParseCredentialCreationResponseBytes(data []byte) (*protocol.ParsedCredentialCreationData, error) {
	return protocol.ParseCredentialCreationResponseBody(bytes.NewReader(data))
}

func (defaultCredentialParser) ParseCredentialRequestResponseBytes(data []byte) (*protocol.ParsedCredentialAssertionData, error) {
	return protocol.ParseCredentialRequestResponseBody(bytes.NewReader(data))
}

type PasskeyService struct {
	db           *gorm.DB
	wa           webAuthnProvider
	parser       credentialParser
	userRepo     repository.IUserRepository
	passkeyRepo  repository.IPasskeyRepository
	challenges   repository.IChallengeRepository
	events       ICeremonyEventService
	logger       *zap.Logger
	challengeTTL time.Duration
}

func NewPasskeyService(wa *webauthn.WebAuthn, db *gorm.DB, userRepo repository.IUserRepository, passkeyRepo repository.IPasskeyRepository, challengeRepo repository.IChallengeRepository, events ICeremonyEventService, logger *zap.Logger) IPasskeyService {
	return &PasskeyService{
		db:           db,
		wa:           wa,
		parser:       defaultCredentialParser{},
		userRepo:     userRepo,
		passkeyRepo:  passkeyRepo,
		challenges:   challengeRepo,
		events:       events,
		logger:       logger,
		challengeTTL: config.ChallengeTTL(),
	}
}

// RegistrationOptions builds the credential creation payload for a user:
// a fresh challenge, an exclusion list covering every passkey already on
// file, and the user's stable opaque handle. The challenge is persisted
// before the options leave this method.
func (ps *PasskeyService) RegistrationOptions(userID uint) (*response.RegistrationOptionsResponse, error) {
	user, err := ps.loadUser(userID)
	if err != nil {
		return nil, ps.fail("registration_options", userID, err)
	}

	// The handle is assigned once and stored server-side; the echoed
	// copy at verification time is checked against this row.
	if len(user.WebAuthnUserHandle) == 0 {
		handle, err := util.GenerateUserHandle()
		if err != nil {
			return nil, ps.fail("registration_options", userID, NewCeremonyError(KindStoreFailure, err))
		}
		if err := ps.userRepo.UpdateWebAuthnHandle(ps.db, user.Id, handle); err != nil {
			return nil, ps.fail("registration_options", userID, NewCeremonyError(KindStoreFailure, err))
		}
		user.WebAuthnUserHandle = handle
	}

	var opts []webauthn.RegistrationOption
	if descriptors := user.CredentialDescriptors(); len(descriptors) > 0 {
		opts = append(opts, webauthn.WithExclusions(descriptors))
	}

	options, session, err := ps.wa.BeginRegistration(*user, opts...)
	if err != nil {
		return nil, ps.fail("registration_options", userID, err)
	}

	if err := ps.storeChallenge(user.Id, session.Challenge); err != nil {
		return nil, ps.fail("registration_options", userID, err)
	}

	ps.logger.Info("passkey registration options issued",
		zap.Uint("user_id", user.Id),
		zap.Int("excluded_credentials", len(user.Passkeys)))

	return &response.RegistrationOptionsResponse{
		Options: options,
		Handle:  base64.RawURLEncoding.EncodeToString(user.WebAuthnUserHandle),
	}, nil
}

// VerifyRegistration checks an attestation response against the user's
// most recent challenge and, on success, persists the new credential.
func (ps *PasskeyService) VerifyRegistration(userID uint, req *request.VerifyRegistrationRequest) error {
	if req == nil || len(req.Cred) == 0 {
		return ps.fail("registration_verify", userID, NewCeremonyError(KindMalformedRequest, errors.New("missing credential response")))
	}
	if req.Handle == "" {
		return ps.fail("registration_verify", userID, NewCeremonyError(KindMalformedRequest, errors.New("missing user handle")))
	}

	user, err := ps.loadUser(userID)
	if err != nil {
		return ps.fail("registration_verify", userID, err)
	}

	// The stored handle is the source of truth; an echo that does not
	// match it means the response was built against someone else's
	// options.
	echoed, err := base64.RawURLEncoding.DecodeString(req.Handle)
	if err != nil {
		return ps.fail("registration_verify", userID, NewCeremonyError(KindMalformedRequest, err))
	}
	if len(user.WebAuthnUserHandle) == 0 || !bytes.Equal(echoed, user.WebAuthnUserHandle) {
		return ps.fail("registration_verify", userID, NewCeremonyError(KindVerificationFailed, errors.New("user handle mismatch")))
	}

	parsed, err := ps.parser.ParseCredentialCreationResponseBytes(req.Cred)
	if err != nil {
		return ps.fail("registration_verify", userID, NewCeremonyError(KindMalformedRequest, err))
	}

	session, err := ps.loadChallengeSession(user)
	if err != nil {
		return ps.fail("registration_verify", userID, err)
	}

	cred, err := ps.wa.CreateCredential(*user, *session, parsed)
	if err != nil {
		return ps.fail("registration_verify", userID, NewCeremonyError(KindVerificationFailed, err))
	}

	passkey := &domain.Passkey{
		UserID:          user.Id,
		CredentialID:    cred.ID,
		PublicKey:       cred.PublicKey,
		WebauthnUserID:  user.WebAuthnUserHandle,
		SignCount:       cred.Authenticator.SignCount,
		Transports:      domain.JoinTransports(cred.Transport),
		AAGUID:          cred.Authenticator.AAGUID,
		AttestationType: cred.AttestationType,
		BackupEligible:  cred.Flags.BackupEligible,
		BackupState:     cred.Flags.BackupState,
	}
	if err := ps.passkeyRepo.Create(ps.db, passkey); err != nil {
		return ps.fail("registration_verify", userID, NewCeremonyError(KindStoreFailure, err))
	}

	ps.consumeChallenges(user.Id)

	ps.logger.Info("passkey registration verified",
		zap.Uint("user_id", user.Id),
		zap.String("credential_id", base64.RawURLEncoding.EncodeToString(cred.ID)))

	if err := ps.events.PublishPasskeyRegistered(&request.PasskeyRegisteredEvent{
		UserId:       user.Id,
		Email:        user.Email,
		CredentialId: base64.RawURLEncoding.EncodeToString(cred.ID),
		Transports:   passkey.Transports,
	}); err != nil {
		ps.logger.Warn("failed to publish passkey registered event", zap.Error(err))
	}

	return nil
}

// AuthenticationOptions builds the assertion payload: a fresh challenge
// and an allow list restricted to the user's registered passkeys. A user
// with no passkeys still gets a challenge with an empty allow list; the
// ceremony then fails client-side rather than here.
func (ps *PasskeyService) AuthenticationOptions(userID uint) (*response.AuthenticationOptionsResponse, error) {
	user, err := ps.loadUser(userID)
	if err != nil {
		return nil, ps.fail("authentication_options", userID, err)
	}

	var options *protocol.CredentialAssertion
	var session *webauthn.SessionData
	if len(user.Passkeys) > 0 {
		options, session, err = ps.wa.BeginLogin(*user, webauthn.WithUserVerification(protocol.VerificationPreferred))
	} else {
		options, session, err = ps.wa.BeginDiscoverableLogin(webauthn.WithUserVerification(protocol.VerificationPreferred))
	}
	if err != nil {
		return nil, ps.fail("authentication_options", userID, err)
	}

	if err := ps.storeChallenge(user.Id, session.Challenge); err != nil {
		return nil, ps.fail("authentication_options", userID, err)
	}

	ps.logger.Info("passkey authentication options issued",
		zap.Uint("user_id", user.Id),
		zap.Int("allowed_credentials", len(user.Passkeys)))

	return &response.AuthenticationOptionsResponse{Options: options}, nil
}

// VerifyAuthentication checks an assertion response against the stored
// credential and the user's most recent challenge, then commits the new
// signature counter.
func (ps *PasskeyService) VerifyAuthentication(userID uint, req *request.VerifyAuthenticationRequest) error {
	if req == nil || len(req.Cred) == 0 {
		return ps.fail("authentication_verify", userID, NewCeremonyError(KindMalformedRequest, errors.New("missing credential response")))
	}

	user, err := ps.loadUser(userID)
	if err != nil {
		return ps.fail("authentication_verify", userID, err)
	}

	parsed, err := ps.parser.ParseCredentialRequestResponseBytes(req.Cred)
	if err != nil {
		return ps.fail("authentication_verify", userID, NewCeremonyError(KindMalformedRequest, err))
	}

	// Scoped by owner: a credential registered to another user is
	// indistinguishable from an unknown one.
	passkey, err := ps.passkeyRepo.GetByUserAndCredentialID(ps.db, user.Id, parsed.RawID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ps.fail("authentication_verify", userID, NewCeremonyError(KindUnknownCredential, err))
		}
		return ps.fail("authentication_verify", userID, NewCeremonyError(KindStoreFailure, err))
	}

	// Validate against the matched credential only.
	user.Passkeys = []domain.Passkey{*passkey}

	session, err := ps.loadChallengeSession(user)
	if err != nil {
		return ps.fail("authentication_verify", userID, err)
	}

	cred, err := ps.wa.ValidateLogin(*user, *session, parsed)
	if err != nil {
		return ps.fail("authentication_verify", userID, NewCeremonyError(KindVerificationFailed, err))
	}

	// The library flags rather than rejects a counter that failed to
	// advance. A flag means a cloned authenticator or a replay, so it is
	// a hard failure here. Authenticators that never increment report
	// zero on both sides and are exempt.
	if cred.Authenticator.CloneWarning {
		return ps.fail("authentication_verify", userID, NewCeremonyError(KindVerificationFailed, errors.New("signature counter did not increase")))
	}

	now := time.Now()
	if err := ps.passkeyRepo.UpdateAfterLogin(ps.db, passkey.ID, cred.Authenticator.SignCount, cred.Flags.BackupState, now); err != nil {
		return ps.fail("authentication_verify", userID, NewCeremonyError(KindStoreFailure, err))
	}

	ps.consumeChallenges(user.Id)

	ps.logger.Info("passkey authentication verified",
		zap.Uint("user_id", user.Id),
		zap.Uint32("sign_count", cred.Authenticator.SignCount))

	if err := ps.events.PublishPasskeyAuthenticated(&request.PasskeyAuthenticatedEvent{
		UserId:       user.Id,
		Email:        user.Email,
		CredentialId: base64.RawURLEncoding.EncodeToString(cred.ID),
		SignCount:    cred.Authenticator.SignCount,
	}); err != nil {
		ps.logger.Warn("failed to publish passkey authenticated event", zap.Error(err))
	}

	return nil
}

func (ps *PasskeyService) loadUser(userID uint) (*domain.User, error) {
	user, err := ps.userRepo.GetWithPasskeys(ps.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewCeremonyError(KindNotAuthenticated, err)
		}
		return nil, NewCeremonyError(KindStoreFailure, err)
	}
	return user, nil
}

func (ps *PasskeyService) storeChallenge(userID uint, challenge string) error {
	entity := &domain.Challenge{UserID: userID, Value: challenge}
	if err := ps.challenges.Create(ps.db, entity); err != nil {
		return NewCeremonyError(KindStoreFailure, err)
	}
	return nil
}

// loadChallengeSession rebuilds the verification session from the most
// recent stored challenge. Only that row counts; a response signed over
// any older challenge fails.
func (ps *PasskeyService) loadChallengeSession(user *domain.User) (*webauthn.SessionData, error) {
	challenge, err := ps.challenges.GetLatestByUser(ps.db, user.Id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewCeremonyError(KindNoChallenge, err)
		}
		return nil, NewCeremonyError(KindStoreFailure, err)
	}

	if ps.challengeTTL > 0 && challenge.CreatedAt != nil && time.Since(*challenge.CreatedAt) > ps.challengeTTL {
		return nil, NewCeremonyError(KindNoChallenge, errors.New("challenge expired"))
	}

	return &webauthn.SessionData{
		Challenge:        challenge.Value,
		UserID:           user.WebAuthnUserHandle,
		UserVerification: protocol.VerificationPreferred,
	}, nil
}

// consumeChallenges deletes the user's outstanding challenges after a
// successful verification. A delete failure leaves only already-signed
// rows behind, so it is logged and not surfaced.
func (ps *PasskeyService) consumeChallenges(userID uint) {
	if err := ps.challenges.DeleteByUser(ps.db, userID); err != nil {
		ps.logger.Warn("failed to delete consumed challenges",
			zap.Uint("user_id", userID), zap.Error(err))
	}
}

func (ps *PasskeyService) fail(op string, userID uint, err error) error {
	kind := KindOf(err)
	if kind == "" {
		ps.logger.Error("passkey ceremony error",
			zap.String("ceremony", op), zap.Uint("user_id", userID), zap.Error(err))
		return err
	}
	ps.logger.Warn("passkey ceremony failed",
		zap.String("ceremony", op),
		zap.Uint("user_id", userID),
		zap.String("kind", string(kind)),
		zap.Error(err))
	return err
}
