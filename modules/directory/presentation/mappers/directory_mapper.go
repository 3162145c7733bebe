package mappers

import (
	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/hcdash/modules/directory/domain/profile"
	"github.com/jacksonlee411/hcdash/modules/directory/presentation/viewmodels"
	"github.com/jacksonlee411/hcdash/modules/directory/services"
)

const (
	LiveEventLoaded = "directory.loaded"
	LiveEventFailed = "directory.load_failed"
)

var hundred = decimal.NewFromInt(100)

func ProfileToViewModel(p profile.Profile) viewmodels.Profile {
	return viewmodels.Profile(p.Clone())
}

func ProfilesToViewModels(records []profile.Profile) []viewmodels.Profile {
	out := make([]viewmodels.Profile, 0, len(records))
	for _, r := range records {
		out = append(out, ProfileToViewModel(r))
	}
	return out
}

func ListResultToViewModel(res *services.ListResult, params services.ListParams) *viewmodels.ProfileList {
	return &viewmodels.ProfileList{
		Items:    ProfilesToViewModels(res.Items),
		Total:    res.Total,
		Limit:    len(res.Items),
		Offset:   params.Offset,
		LoadedAt: res.LoadedAt,
	}
}

// PerformanceToViewModel uses the first matching record's history.
func PerformanceToViewModel(nip string, records []profile.Profile) *viewmodels.Performance {
	vm := &viewmodels.Performance{NIP: nip, History: []viewmodels.YearRating{}}
	if len(records) == 0 {
		return vm
	}
	vm.FullName = records[0].FullName()
	for _, yr := range profile.PerformanceHistory(records[0]) {
		vm.History = append(vm.History, viewmodels.YearRating{Year: yr.Year, PL: yr.PL, TC: yr.TC})
	}
	return vm
}

func BreakdownToViewModel(b profile.Breakdown) viewmodels.Breakdown {
	vm := viewmodels.Breakdown{
		Buckets: make([]viewmodels.Bucket, 0, len(b.Buckets)),
		Total:   b.Total,
		Skipped: b.Skipped,
	}
	for _, bk := range b.Buckets {
		vm.Buckets = append(vm.Buckets, viewmodels.Bucket{
			Label:   bk.Label,
			Count:   bk.Count,
			Percent: percent(bk.Count, b.Total),
		})
	}
	return vm
}

func percent(count, total int) string {
	if total == 0 {
		return decimal.Zero.StringFixed(1)
	}
	return decimal.NewFromInt(int64(count)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		StringFixed(1)
}

func AnalyticsToViewModel(a *services.Analytics) *viewmodels.Analytics {
	return &viewmodels.Analytics{
		Total:      a.Total,
		LoadedAt:   a.LoadedAt,
		Generation: BreakdownToViewModel(a.Generation),
		Tenure:     BreakdownToViewModel(a.Tenure),
		ByUnit:     BreakdownToViewModel(a.ByUnit),
		ByArea:     BreakdownToViewModel(a.ByArea),
		ByLevel:    BreakdownToViewModel(a.ByLevel),
	}
}

func FieldsToViewModels(fields []profile.Field) []viewmodels.Field {
	out := make([]viewmodels.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, viewmodels.Field{Header: f.Header, Key: f.Key})
	}
	return out
}

func LoadedEventToLive(e *services.DirectoryLoadedEvent) viewmodels.LiveEvent {
	return viewmodels.LiveEvent{
		Type:      LiveEventLoaded,
		Source:    e.Source,
		Records:   e.Stats.Records,
		Blank:     e.Stats.Blank,
		Unmapped:  e.Stats.UnmappedColumns,
		Timestamp: e.LoadedAt,
	}
}

func FailedEventToLive(e *services.DirectoryLoadFailedEvent) viewmodels.LiveEvent {
	ev := viewmodels.LiveEvent{
		Type:      LiveEventFailed,
		Source:    e.Source,
		Timestamp: e.FailedAt,
	}
	if e.Err != nil {
		ev.Error = e.Err.Error()
	}
	return ev
}
