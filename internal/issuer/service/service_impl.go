package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gdg-oncampus/certhub/internal/clock"
	"github.com/gdg-oncampus/certhub/internal/identity"
	"github.com/gdg-oncampus/certhub/internal/issuer/domain"
	"github.com/gdg-oncampus/certhub/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("issuer.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Resolve(ctx context.Context, caller identity.Caller) (*domain.ResolveResult, error) {
	existing, err := s.repo.FindByOCID(ctx, s.db, caller.OCID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if !existing.CanLogin {
			return nil, domain.ErrLoginDisabled
		}
		return &domain.ResolveResult{Issuer: existing}, nil
	}

	now := s.clock.Now()
	issuer := &domain.Issuer{
		ID:        s.genID.Generate(),
		OCID:      caller.OCID,
		Name:      identity.DeriveName(caller.Name, caller.Email),
		Email:     caller.Email,
		CanLogin:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, issuer); err != nil {
		// Two first logins racing on the same email surface as a
		// conflict, not a generic failure.
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrEmailConflict
		}
		return nil, err
	}

	s.log.Info("issuer created on first login", zap.String("ocid", issuer.OCID))
	return &domain.ResolveResult{Issuer: issuer, Created: true}, nil
}

func (s *Service) Get(ctx context.Context, ocid string) (*domain.Issuer, error) {
	issuer, err := s.repo.FindByOCID(ctx, s.db, ocid)
	if err != nil {
		return nil, err
	}
	if issuer == nil {
		return nil, domain.ErrNotFound
	}
	return issuer, nil
}

func (s *Service) UpdateProfile(ctx context.Context, ocid string, req domain.UpdateProfileRequest) (*domain.Issuer, error) {
	name := trimmed(req.Name)
	orgName := trimmed(req.OrgName)
	if name == "" && orgName == "" {
		return nil, domain.ErrNothingToUpdate
	}

	current, err := s.repo.FindByOCID(ctx, s.db, ocid)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	// The lock rejects any resubmission, including the stored value.
	if orgName != "" && current.OrgLocked() {
		return nil, domain.ErrOrgNameLocked
	}

	now := s.clock.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if name != "" {
			if err := s.repo.UpdateName(ctx, tx, ocid, name, now); err != nil {
				return err
			}
		}
		if orgName != "" {
			affected, err := s.repo.SetOrgNameOnce(ctx, tx, ocid, orgName, now)
			if err != nil {
				return err
			}
			// A concurrent writer may have locked the field between
			// the read above and this write.
			if affected == 0 {
				return domain.ErrOrgNameLocked
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, ocid)
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
