// Package services contains the server-side business logic. This file
// implements LoginService, the two-stage login state machine: password
// verification issues a session at the password-verified level, a correct
// one-time access code promotes it to fully authenticated.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/banksim/internal/common"
	"github.com/dmitrijs2005/banksim/internal/dbx"
	"github.com/dmitrijs2005/banksim/internal/delivery"
	"github.com/dmitrijs2005/banksim/internal/logging"
	"github.com/dmitrijs2005/banksim/internal/passhash"
	"github.com/dmitrijs2005/banksim/internal/server/config"
	"github.com/dmitrijs2005/banksim/internal/server/models"
	"github.com/dmitrijs2005/banksim/internal/server/repositories/repomanager"
)

const (
	sessionTokenBytes = 32
	otacSecretBytes   = 20
)

// OtacService derives and checks one-time access codes. Implemented by
// otac.Verifier; faked in tests.
type OtacService interface {
	// Generate returns the code for the current time window.
	Generate(secret []byte) string
	// Verify checks an attempt against the accepted window range.
	Verify(attempt string, secret []byte) bool
}

// LoginService orchestrates credential verification, OTAC checks and session
// issuance. It is safe for concurrent use; every call runs its own
// transactions on connections checked out from the pool.
type LoginService struct {
	db              *sql.DB
	rm              repomanager.RepositoryManager
	otac            OtacService
	sender          delivery.Sender
	logger          logging.Logger
	hashIterations  int
	sessionValidity time.Duration
}

// NewLoginService constructs a LoginService using repositories and server config.
func NewLoginService(db *sql.DB, rm repomanager.RepositoryManager, otacService OtacService,
	sender delivery.Sender, logger logging.Logger, cfg *config.Config) *LoginService {
	return &LoginService{
		db:              db,
		rm:              rm,
		otac:            otacService,
		sender:          sender,
		logger:          logger.With("module", "login"),
		hashIterations:  cfg.PasswordHashIterations,
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// Register creates a new account with its credential record in one
// transaction and returns the generated account ID. The new account number is
// messaged to the customer's phone so they can log in.
func (s *LoginService) Register(ctx context.Context, account *models.Account, password string) (int64, error) {
	if password == "" {
		return 0, fmt.Errorf("password must not be empty")
	}

	salt := passhash.NewSalt(passhash.DefaultSaltLength)
	hash, err := passhash.Hash(password, salt, s.hashIterations)
	if err != nil {
		return 0, err
	}
	otacSecret := common.GenerateRandByteArray(otacSecretBytes)

	var accountID int64
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		id, err := s.rm.Accounts(tx).Create(ctx, account)
		if err != nil {
			return fmt.Errorf("error creating account: %w", err)
		}
		cred := &models.Credential{
			AccountID:      id,
			PasswordHash:   hash,
			PasswordSalt:   salt,
			HashIterations: s.hashIterations,
			OtacSecret:     otacSecret,
		}
		if err := s.rm.Credentials(tx).Create(ctx, cred); err != nil {
			return fmt.Errorf("error creating credential: %w", err)
		}
		accountID = id
		return nil
	}); err != nil {
		return 0, err
	}

	s.sendMessage(ctx, account.PhoneNumber,
		fmt.Sprintf("Welcome! Your new account number is %d. Please use it to log in.", accountID))

	return accountID, nil
}

// AttemptPasswordLogin is the first stage of the state machine. On success it
// issues a session token at the password-verified level and triggers OTAC
// delivery. A missing account and a wrong password are both reported as
// ErrorUnauthorized so the result does not reveal which accounts exist.
func (s *LoginService) AttemptPasswordLogin(ctx context.Context, accountID int64, password string) (string, error) {
	if accountID <= 0 || password == "" {
		return "", common.ErrorUnauthorized
	}

	cred, err := s.rm.Credentials(s.db).Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}

	ok, err := passhash.Verify(password, cred.PasswordSalt, cred.PasswordHash, cred.HashIterations)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	// Opportunistic hash upgrade: same salt, current iteration policy. The
	// login stays valid even if the upgrade fails, so only log on error.
	if cred.HashIterations < s.hashIterations {
		if err := s.upgradeHash(ctx, accountID, password, cred.PasswordSalt); err != nil {
			s.logger.Warn(ctx, "password hash upgrade failed", "account_id", accountID, "error", err.Error())
		}
	}

	token, err := s.assignSession(ctx, accountID, models.LevelPasswordVerified, false)
	if err != nil {
		return "", err
	}

	s.sendOtac(ctx, accountID, cred.OtacSecret)

	return token, nil
}

// AttemptOtacLogin is the second stage of the state machine. A valid code
// promotes the account to fully authenticated on a fresh token and invalidates
// every prior session (single active authenticated session policy). A wrong
// code re-sends the current one and leaves the session where it was.
func (s *LoginService) AttemptOtacLogin(ctx context.Context, token string, attempt string) (string, error) {
	session, err := s.rm.Sessions(s.db).FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}

	cred, err := s.rm.Credentials(s.db).Get(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// A live session proves the account exists, so the credential
			// record must exist too.
			return "", fmt.Errorf("%w: credential record missing for account %d",
				common.ErrDataIntegrity, session.AccountID)
		}
		return "", err
	}

	if !s.otac.Verify(attempt, cred.OtacSecret) {
		s.sendOtac(ctx, session.AccountID, cred.OtacSecret)
		return "", common.ErrorUnauthorized
	}

	return s.assignSession(ctx, session.AccountID, models.LevelFullyAuthenticated, true)
}

// SessionState derives the state machine position for a token. A token that
// does not resolve to a live session is simply unauthenticated, regardless of
// its history; that is not an error.
func (s *LoginService) SessionState(ctx context.Context, token string) (models.AuthLevel, int64, error) {
	session, err := s.rm.Sessions(s.db).FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.LevelUnauthenticated, 0, nil
		}
		return models.LevelUnauthenticated, 0, err
	}
	return session.Level, session.AccountID, nil
}

// Logout invalidates every session of the account owning the token. Unknown
// or already expired tokens are a no-op.
func (s *LoginService) Logout(ctx context.Context, token string) error {
	session, err := s.rm.Sessions(s.db).FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Accounts(tx).Lock(ctx, session.AccountID); err != nil {
			return err
		}
		return s.rm.Sessions(tx).InvalidateAll(ctx, session.AccountID)
	})
}

// --- helpers below ---

// assignSession writes a fresh token for the account under the account row
// lock, which serializes concurrent session writes for the same account.
// When invalidatePrior is set, every existing session is expired first.
func (s *LoginService) assignSession(ctx context.Context, accountID int64, level models.AuthLevel, invalidatePrior bool) (string, error) {
	token, err := common.MakeRandHexString(sessionTokenBytes)
	if err != nil {
		return "", common.ErrorInternal
	}
	expiry := time.Now().Add(s.sessionValidity)

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Accounts(tx).Lock(ctx, accountID); err != nil {
			return err
		}
		if invalidatePrior {
			if err := s.rm.Sessions(tx).InvalidateAll(ctx, accountID); err != nil {
				return err
			}
		}
		return s.rm.Sessions(tx).Assign(ctx, accountID, token, level, expiry)
	}); err != nil {
		return "", err
	}

	return token, nil
}

// upgradeHash recomputes the stored hash with the current iteration policy,
// reusing the existing salt and the verified plaintext.
func (s *LoginService) upgradeHash(ctx context.Context, accountID int64, password string, salt []byte) error {
	hash, err := passhash.Hash(password, salt, s.hashIterations)
	if err != nil {
		return err
	}
	return s.rm.Credentials(s.db).UpdatePassword(ctx, accountID, hash, salt, s.hashIterations)
}

// sendOtac generates the current code for the account and hands it to the
// delivery collaborator. Delivery is fire-and-forget: failures are logged,
// never surfaced to the login flow.
func (s *LoginService) sendOtac(ctx context.Context, accountID int64, secret []byte) {
	phone, err := s.rm.Accounts(s.db).GetContact(ctx, accountID)
	if err != nil {
		s.logger.Error(ctx, "cannot resolve contact for OTAC delivery", "account_id", accountID, "error", err.Error())
		return
	}

	code := s.otac.Generate(secret)
	s.sendMessage(ctx, phone,
		fmt.Sprintf("NEVER share this code with anybody, not even bank staff.\nPlease use the code %s to log in.", code))
}

func (s *LoginService) sendMessage(ctx context.Context, address string, message string) {
	if err := s.sender.Send(ctx, address, message); err != nil {
		s.logger.Error(ctx, "message delivery failed", "address", address, "error", err.Error())
	}
}
