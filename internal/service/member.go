package service

import (
	"context"
	"strings"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type MemberService struct {
	members MemberStore
	hasher  PasswordHasher
	mailer  Mailer
	logger  *zerolog.Logger
}

func NewMemberService(members MemberStore, hasher PasswordHasher, mailer Mailer, logger *zerolog.Logger) *MemberService {
	return &MemberService{
		members: members,
		hasher:  hasher,
		mailer:  mailer,
		logger:  logger,
	}
}

// SignUp registers a member and queues the welcome email. A failure to
// queue the email does not fail the sign up. The name is stored trimmed.
func (s *MemberService) SignUp(ctx context.Context, email, name, password string) (int64, error) {
	name = strings.TrimSpace(name)
	if err := model.ValidateEmail(email); err != nil {
		return 0, err
	}
	if err := model.ValidateName(name); err != nil {
		return 0, err
	}
	if err := model.ValidatePassword(password); err != nil {
		return 0, err
	}

	exists, err := s.members.ExistsByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errs.ErrDuplicateMemberEmail
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, err
	}

	id, err := s.members.Create(ctx, email, name, hash)
	if err != nil {
		return 0, err
	}

	if err := s.mailer.EnqueueWelcomeEmail(ctx, email, name); err != nil {
		loggerFor(ctx, s.logger).Warn().Err(err).Int64("member_id", id).Msg("failed to enqueue welcome email")
	}

	return id, nil
}

// Authenticate returns the id of the member owning the credentials.
func (s *MemberService) Authenticate(ctx context.Context, email, password string) (int64, error) {
	member, err := s.members.FindByEmail(ctx, email)
	if err != nil {
		return 0, notFound(err, errs.ErrMemberNotFound)
	}

	if !s.hasher.Matches(member.Password, password) {
		return 0, errs.ErrWrongPassword
	}
	return member.ID, nil
}

func (s *MemberService) FindMemberByID(ctx context.Context, id int64) (*model.MemberInfoResponse, error) {
	member, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.MemberInfoResponse{Email: member.Email, Name: member.Name}, nil
}

func (s *MemberService) CheckDuplicateEmail(ctx context.Context, email string) error {
	exists, err := s.members.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return errs.ErrDuplicateEmail
	}
	return nil
}

// UpdateName compares and stores the trimmed name.
func (s *MemberService) UpdateName(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	member, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if member.Name == name {
		return errs.ErrSameName
	}
	if err := model.ValidateName(name); err != nil {
		return err
	}

	return notFound(s.members.UpdateName(ctx, id, name), errs.ErrMemberNotFound)
}

// UpdatePassword requires the current password and refuses to reuse it.
func (s *MemberService) UpdatePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	member, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !s.hasher.Matches(member.Password, oldPassword) {
		return errs.ErrPasswordMismatch
	}
	if s.hasher.Matches(member.Password, newPassword) {
		return errs.ErrSamePassword
	}
	if err := model.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return notFound(s.members.UpdatePassword(ctx, id, hash), errs.ErrMemberNotFound)
}

// DeleteMemberByID removes the member after the password is re-entered.
func (s *MemberService) DeleteMemberByID(ctx context.Context, id int64, password string) error {
	member, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !s.hasher.Matches(member.Password, password) {
		return errs.ErrPasswordMismatch
	}
	return notFound(s.members.Delete(ctx, id), errs.ErrMemberNotFound)
}

func (s *MemberService) find(ctx context.Context, id int64) (*model.Member, error) {
	member, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, errs.ErrMemberNotFound)
	}
	return member, nil
}

// notFound replaces a no-rows error with the given domain error.
func notFound(err error, domainErr *errs.DomainError) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErr
	}
	return err
}
