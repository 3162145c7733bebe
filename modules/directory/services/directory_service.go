package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/hcdash/modules/directory/domain/profile"
	"github.com/jacksonlee411/hcdash/modules/directory/infrastructure/sheet"
	"github.com/jacksonlee411/hcdash/pkg/authz"
	"github.com/jacksonlee411/hcdash/pkg/eventbus"
	"github.com/jacksonlee411/hcdash/pkg/session"
)

// Snapshot is the result of one load. The caller owns it.
type Snapshot struct {
	Profiles []profile.Profile
	Stats    sheet.Stats
	LoadedAt time.Time
	Source   string
}

type ListResult struct {
	Items    []profile.Profile
	Total    int
	LoadedAt time.Time
}

type Analytics struct {
	Generation profile.Breakdown
	Tenure     profile.Breakdown
	ByUnit     profile.Breakdown
	ByArea     profile.Breakdown
	ByLevel    profile.Breakdown
	Total      int
	LoadedAt   time.Time
}

type invalidator interface {
	Invalidate(ctx context.Context) error
}

type DirectoryService struct {
	source          sheet.Source
	authorizer      authz.Authorizer
	publisher       eventbus.EventBus
	log             *logrus.Entry
	now             func() time.Time
	defaultPageSize int
}

type Option func(*DirectoryService)

func WithClock(now func() time.Time) Option {
	return func(s *DirectoryService) { s.now = now }
}

func WithDefaultPageSize(n int) Option {
	return func(s *DirectoryService) {
		if n > 0 && n <= MaxPageSize {
			s.defaultPageSize = n
		}
	}
}

func NewDirectoryService(
	source sheet.Source,
	authorizer authz.Authorizer,
	publisher eventbus.EventBus,
	log *logrus.Logger,
	opts ...Option,
) *DirectoryService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if publisher == nil {
		publisher = eventbus.NewEventPublisher(nil)
	}
	s := &DirectoryService{
		source:          source,
		authorizer:      authorizer,
		publisher:       publisher,
		log:             log.WithField("component", "directory"),
		now:             time.Now,
		defaultPageSize: 50,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches and parses the sheet. Every call rebuilds the profile set.
func (s *DirectoryService) Load(ctx context.Context, sess session.Session) (*Snapshot, error) {
	if err := s.authorize(ctx, sess, ProfilesAuthzObject, ActionList); err != nil {
		return nil, err
	}
	return s.load(ctx, sess)
}

func (s *DirectoryService) load(ctx context.Context, sess session.Session) (*Snapshot, error) {
	start := s.now()
	text, err := s.source.Fetch(ctx)
	if err != nil {
		recordLoad(sheet.Stats{}, s.now().Sub(start), err)
		s.log.WithContext(ctx).WithError(err).WithField("source", s.source.Name()).Error("directory sheet fetch failed")
		s.publisher.Publish(&DirectoryLoadFailedEvent{
			Source:   s.source.Name(),
			Err:      err,
			FailedAt: s.now(),
			Actor:    sess,
		})
		return nil, err
	}

	records, stats := sheet.ParseWithStats(text)
	loadedAt := s.now()
	recordLoad(stats, loadedAt.Sub(start), nil)
	s.log.WithContext(ctx).WithFields(logrus.Fields{
		"source":   s.source.Name(),
		"records":  stats.Records,
		"blank":    stats.Blank,
		"unmapped": stats.UnmappedColumns,
	}).Info("directory sheet loaded")

	s.publisher.Publish(&DirectoryLoadedEvent{
		Source:   s.source.Name(),
		Stats:    stats,
		LoadedAt: loadedAt,
		Actor:    sess,
	})
	return &Snapshot{
		Profiles: records,
		Stats:    stats,
		LoadedAt: loadedAt,
		Source:   s.source.Name(),
	}, nil
}

// List filters, searches, sorts and pages the directory.
func (s *DirectoryService) List(ctx context.Context, sess session.Session, params ListParams) (*ListResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	snap, err := s.Load(ctx, sess)
	if err != nil {
		return nil, err
	}

	matched := filterProfiles(snap.Profiles, params)
	if params.Q != "" {
		matched = searchProfiles(matched, params.Q)
	}
	if params.Sort != "" {
		sortProfiles(matched, params.Sort, params.Order == "desc")
	}

	limit := params.Limit
	if limit == 0 {
		limit = s.defaultPageSize
	}
	return &ListResult{
		Items:    page(matched, params.Offset, limit),
		Total:    len(matched),
		LoadedAt: snap.LoadedAt,
	}, nil
}

// FindByNIP returns every record with the given nip; nip is not unique.
// Sessions without list rights may only read their own records.
func (s *DirectoryService) FindByNIP(ctx context.Context, sess session.Session, nip string) ([]profile.Profile, error) {
	action := ActionList
	if sess.Owns(nip) {
		action = ActionViewOwn
	}
	if err := s.authorize(ctx, sess, ProfilesAuthzObject, action); err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	return profile.FilterByNIP(snap.Profiles, nip), nil
}

func (s *DirectoryService) Analytics(ctx context.Context, sess session.Session) (*Analytics, error) {
	if err := s.authorize(ctx, sess, AnalyticsAuthzObject, ActionView); err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	return BuildAnalytics(snap.Profiles, snap.LoadedAt), nil
}

// BuildAnalytics computes every breakdown over records. Birth years are
// bounded by loadedAt.
func BuildAnalytics(records []profile.Profile, loadedAt time.Time) *Analytics {
	return &Analytics{
		Generation: profile.GenerationBreakdown(records, loadedAt),
		Tenure:     profile.TenureBreakdown(records),
		ByUnit:     profile.CountBy(records, profile.KeyUnitKerja),
		ByArea:     profile.CountBy(records, profile.KeyArea),
		ByLevel:    profile.CountBy(records, profile.KeyLevel),
		Total:      len(records),
		LoadedAt:   loadedAt,
	}
}

// Refresh drops any cached sheet text and reloads as the system session.
func (s *DirectoryService) Refresh(ctx context.Context) (*Snapshot, error) {
	if inv, ok := s.source.(invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			s.log.WithContext(ctx).WithError(err).Warn("directory cache invalidation failed")
		}
	}
	return s.Load(ctx, session.System)
}

func filterProfiles(records []profile.Profile, params ListParams) []profile.Profile {
	filters := map[string]string{
		profile.KeyUnitKerja: params.UnitKerja,
		profile.KeyArea:      params.Area,
		profile.KeyLevel:     params.Level,
	}
	out := make([]profile.Profile, 0, len(records))
outer:
	for _, r := range records {
		for key, want := range filters {
			if want != "" && !strings.EqualFold(strings.TrimSpace(r.Value(key)), want) {
				continue outer
			}
		}
		out = append(out, r)
	}
	return out
}

// searchProfiles keeps fuzzy matches on name or nip, best match first.
func searchProfiles(records []profile.Profile, q string) []profile.Profile {
	targets := make([]string, len(records))
	for i, r := range records {
		targets[i] = r.FullName() + " " + r.NIP()
	}
	ranks := fuzzy.RankFindNormalizedFold(q, targets)
	sort.Stable(ranks)

	out := make([]profile.Profile, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, records[rank.OriginalIndex])
	}
	return out
}

// sortProfiles orders by key case-insensitively. Records without the key
// sort last in either direction.
func sortProfiles(records []profile.Profile, key string, desc bool) {
	sort.SliceStable(records, func(i, j int) bool {
		a, aok := records[i].Get(key)
		b, bok := records[j].Get(key)
		if aok != bok {
			return aok
		}
		a, b = strings.ToLower(a), strings.ToLower(b)
		if desc {
			return a > b
		}
		return a < b
	})
}

func page(records []profile.Profile, offset, limit int) []profile.Profile {
	if offset >= len(records) {
		return []profile.Profile{}
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
