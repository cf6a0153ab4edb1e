// Package provision turns a form submission into import records, ticket
// bodies and a review, using one Configuration per session.
package provision

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"adprov/pkg/config"
	"adprov/pkg/engine"
	"adprov/pkg/logger"
	"adprov/pkg/record"
	"adprov/pkg/report"
	"adprov/pkg/settings"
)

// ErrUnknownVariant is returned for a variant name not in the settings.
var ErrUnknownVariant = errors.New("unknown form variant")

// OU keys whose selection pulls in a distribution list set.
const (
	ouKeyStandard = "utenti_standard"
	ouKeyVIP      = "utenti_vip"
	// ouComputerKey is the Defaults key of the workstation OU.
	ouComputerKey = "ou_computer"
)

// Service generates provisioning artifacts.
type Service struct {
	settings settings.Config
	log      logger.Logger
	now      func() time.Time
	newID    func() string
}

// NewService returns a Service using the given settings.
func NewService(cfg settings.Config) *Service {
	return &Service{
		settings: cfg,
		log:      logger.New("provision").File("service"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithLogger replaces the service logger.
func (s *Service) WithLogger(log logger.Logger) *Service {
	s.log = log.File("service")
	return s
}

// Settings returns the settings the service was built with.
func (s *Service) Settings() settings.Config {
	return s.settings
}

// Variant looks a variant up by name.
func (s *Service) Variant(name string) (settings.Variant, error) {
	v, ok := s.settings.Variant(name)
	if !ok {
		return settings.Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// Generate derives the identity for form and builds every artifact the
// variant asks for. directory may be nil when no export was uploaded.
func (s *Service) Generate(ctx context.Context, cfg *config.Configuration, variantName string, form Form, directory *engine.DirectoryIndex) (*Result, error) {
	log := s.log.Function("Generate")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, config.ErrNoConfiguration
	}
	variant, err := s.Variant(variantName)
	if err != nil {
		return nil, err
	}

	form = withDefaults(form.Normalized(), cfg, variant)
	person := form.Person(variant.External)
	identity := engine.Derive(person)

	b := &builder{
		settings: s.settings,
		cfg:      cfg,
		variant:  variant,
		form:     form,
		identity: identity,
	}
	b.resolve()

	collisions := engine.CheckCollisions(directory, identity, b.mail, b.department)
	findings := engine.Review(engine.ReviewInput{
		Person:        person,
		Identity:      identity,
		RequireExpiry: variant.RequireExpiry,
		Collisions:    collisions,
	})
	review := report.BuildReviewReport(identity.AccountName, findings, collisions)

	result := &Result{
		ID:          s.newID(),
		Variant:     variant,
		Person:      person,
		Identity:    identity,
		Groups:      b.groups,
		Review:      review,
		GeneratedAt: s.now().UTC(),
		BaseName:    record.BaseName(form.FamilyName, form.GivenName, variant.FileSuffix),
	}

	formatter := record.NewFormatter(variant.QuoteColumns)
	if err := result.addRecord(formatter, record.KindUser, record.UserSchema, b.userRow().Fields()); err != nil {
		return nil, log.Err("failed to format user record", err, "account", identity.AccountName)
	}
	messages := []string{report.RenderMailboxRequest(b.mailboxRequest())}

	if variant.ComputerRecord && form.Device() != "" {
		if err := result.addRecord(formatter, record.KindComputer, record.ComputerSchema, b.computerRow().Fields()); err != nil {
			return nil, log.Err("failed to format computer record", err, "account", identity.AccountName)
		}
		messages = append(messages, report.RenderComputerRequest(b.computerRequest()))
	}

	if variant.ProfilingRecord && len(form.SMLines) > 0 {
		if err := result.addRecord(formatter, record.KindProfiling, record.UserSchema, b.profilingRow().Fields()); err != nil {
			return nil, log.Err("failed to format profiling record", err, "account", identity.AccountName)
		}
		messages = append(messages, report.RenderProfilingRequest(report.ProfilingRequest{
			AccountName: identity.AccountName,
			DisplayName: identity.DisplayName,
			SMProfiles:  form.SMLines,
		}))
	}

	result.Messages = messages
	result.Preview = report.RenderPreview(report.Preview{
		Title:    variant.Title,
		Identity: b.identityRows(),
		Review:   review,
		Messages: messages,
		Files:    result.Artifacts,
	})

	result.Artifacts = append(result.Artifacts,
		report.Artifact{Name: result.BaseName + "_mail.txt", ContentType: "text/plain; charset=utf-8", Content: []byte(strings.Join(messages, "\n---\n\n"))},
		report.Artifact{Name: result.BaseName + "_preview.md", ContentType: "text/markdown; charset=utf-8", Content: []byte(result.Preview)},
		report.Artifact{Name: result.BaseName + "_review.txt", ContentType: "text/plain; charset=utf-8", Content: []byte(review.RenderText())},
	)

	log.Info("generated provisioning artifacts",
		"variant", variant.Name,
		"account", identity.AccountName,
		"files", len(result.Artifacts),
		"severity", review.MaxSeverity,
	)
	return result, nil
}
