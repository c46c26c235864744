package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gdg-oncampus/certhub/internal/clock"
	issuerdomain "github.com/gdg-oncampus/certhub/internal/issuer/domain"
	"github.com/gdg-oncampus/certhub/internal/template/builtin"
	templatedomain "github.com/gdg-oncampus/certhub/internal/template/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Template names look like filenames so saved templates and the
// embedded starters share one addressing scheme.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+\.html$`)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       templatedomain.Repository
	IssuerRepo issuerdomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       templatedomain.Repository
	issuerRepo issuerdomain.Repository
}

func New(p Params) templatedomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("template.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		issuerRepo: p.IssuerRepo,
	}
}

func (s *Service) List(ctx context.Context, ocid string) (*templatedomain.ListResponse, error) {
	issuer, err := s.requireOnboardedIssuer(ctx, ocid)
	if err != nil {
		return nil, err
	}

	resp := &templatedomain.ListResponse{Templates: make([]templatedomain.Response, 0)}
	for _, b := range builtin.List() {
		resp.Templates = append(resp.Templates, templatedomain.Response{
			Type:        templatedomain.TypeBuiltin,
			Name:        b.Name,
			Description: b.Description,
		})
	}

	items, err := s.repo.List(ctx, s.db, *issuer.OrgName)
	if err != nil {
		return nil, err
	}
	for i := range items {
		resp.Templates = append(resp.Templates, s.toResponse(&items[i], false))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, ocid string, typ templatedomain.Type, name string) (*templatedomain.Response, error) {
	issuer, err := s.requireOnboardedIssuer(ctx, ocid)
	if err != nil {
		return nil, err
	}
	if !typ.Valid() {
		return nil, templatedomain.ErrInvalidType
	}

	if typ == templatedomain.TypeBuiltin {
		content, ok := builtin.Read(name)
		if !ok {
			return nil, templatedomain.ErrNotFound
		}
		return &templatedomain.Response{
			Type:        templatedomain.TypeBuiltin,
			Name:        name,
			Description: builtin.Description(name),
			HTMLContent: content,
		}, nil
	}

	item, err := s.repo.FindByName(ctx, s.db, *issuer.OrgName, name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, templatedomain.ErrNotFound
	}
	resp := s.toResponse(item, true)
	return &resp, nil
}

func (s *Service) Upsert(ctx context.Context, ocid string, req templatedomain.UpsertRequest) (*templatedomain.Response, error) {
	issuer, err := s.requireOnboardedIssuer(ctx, ocid)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if !namePattern.MatchString(name) {
		return nil, templatedomain.ErrInvalidName
	}
	if strings.TrimSpace(req.HTMLContent) == "" {
		return nil, templatedomain.ErrInvalidContent
	}

	orgName := *issuer.OrgName
	now := s.clock.Now()

	// The name lookup runs inside the transaction so a concurrent
	// first-time save of the same name loses on the unique index
	// instead of slipping past the existence check.
	var item *templatedomain.EmailTemplate
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByName(ctx, tx, orgName, name)
		if err != nil {
			return err
		}

		if existing != nil {
			existing.Description = req.Description
			existing.HTMLContent = req.HTMLContent
			existing.IsDefault = req.IsDefault
			existing.UpdatedAt = now
			item = existing
		} else {
			item = &templatedomain.EmailTemplate{
				ID:          s.genID.Generate(),
				OrgName:     orgName,
				Name:        name,
				Description: req.Description,
				HTMLContent: req.HTMLContent,
				IsDefault:   req.IsDefault,
				CreatedBy:   ocid,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
		}

		if req.IsDefault {
			if err := s.unsetDefault(ctx, tx, orgName, now); err != nil {
				return err
			}
		}
		if existing != nil {
			return s.repo.Update(ctx, tx, item)
		}
		return s.repo.Insert(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(item, false)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, ocid string, id string) error {
	issuer, err := s.requireOnboardedIssuer(ctx, ocid)
	if err != nil {
		return err
	}

	templateID, err := templatedomain.ParseID(id)
	if err != nil {
		return err
	}

	item, err := s.repo.FindByID(ctx, s.db, *issuer.OrgName, templateID)
	if err != nil {
		return err
	}
	if item == nil {
		return templatedomain.ErrNotFound
	}
	if item.IsDefault {
		return templatedomain.ErrDefaultDelete
	}

	return s.repo.Delete(ctx, s.db, *issuer.OrgName, templateID)
}

func (s *Service) SetDefault(ctx context.Context, ocid string, id string) (*templatedomain.Response, error) {
	issuer, err := s.requireOnboardedIssuer(ctx, ocid)
	if err != nil {
		return nil, err
	}

	templateID, err := templatedomain.ParseID(id)
	if err != nil {
		return nil, err
	}

	orgName := *issuer.OrgName
	item, err := s.repo.FindByID(ctx, s.db, orgName, templateID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, templatedomain.ErrNotFound
	}

	now := s.clock.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.unsetDefault(ctx, tx, orgName, now); err != nil {
			return err
		}
		item.IsDefault = true
		item.UpdatedAt = now
		return s.repo.Update(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(item, false)
	return &resp, nil
}

func (s *Service) unsetDefault(ctx context.Context, tx *gorm.DB, orgName string, now time.Time) error {
	return tx.WithContext(ctx).Exec(
		`UPDATE email_templates
		 SET is_default = FALSE, updated_at = ?
		 WHERE org_name = ? AND is_default = TRUE`,
		now,
		orgName,
	).Error
}

func (s *Service) requireOnboardedIssuer(ctx context.Context, ocid string) (*issuerdomain.Issuer, error) {
	issuer, err := s.issuerRepo.FindByOCID(ctx, s.db, ocid)
	if err != nil {
		return nil, err
	}
	if issuer == nil {
		return nil, issuerdomain.ErrNotFound
	}
	if issuer.OrgName == nil || strings.TrimSpace(*issuer.OrgName) == "" {
		return nil, issuerdomain.ErrProfileIncomplete
	}
	return issuer, nil
}

func (s *Service) toResponse(item *templatedomain.EmailTemplate, withContent bool) templatedomain.Response {
	resp := templatedomain.Response{
		ID:        item.ID.String(),
		Type:      templatedomain.TypeCustom,
		Name:      item.Name,
		IsDefault: item.IsDefault,
		CreatedAt: &item.CreatedAt,
		UpdatedAt: &item.UpdatedAt,
	}
	if item.Description != nil {
		resp.Description = *item.Description
	}
	if withContent {
		resp.HTMLContent = item.HTMLContent
	}
	return resp
}
