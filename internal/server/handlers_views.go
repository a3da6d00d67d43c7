package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/jonathan/vendor-insights/internal/analytics"
	"github.com/jonathan/vendor-insights/internal/cache"
	"github.com/jonathan/vendor-insights/internal/types"
	"github.com/jonathan/vendor-insights/internal/view"
)

// parseFilters reads the common filter parameters. Only the period is validated; unknown
// vendor, role or family names simply match nothing.
func parseFilters(q url.Values) (analytics.FilterState, error) {
	period, err := analytics.ParsePeriod(q.Get("period"))
	if err != nil {
		return analytics.FilterState{}, err
	}
	fs := analytics.FilterState{
		Period:    period,
		Vendor:    q.Get("vendor"),
		Role:      q.Get("role"),
		JobFamily: q.Get("family"),
		Search:    q.Get("q"),
		Regions:   q["region"],
	}
	return fs.Normalize(), nil
}

// canonicalQuery renders normalized filters plus view-specific parameters as a stable
// cache key suffix.
func canonicalQuery(fs analytics.FilterState, extra url.Values) string {
	v := url.Values{}
	v.Set("period", string(fs.Period))
	v.Set("vendor", fs.Vendor)
	v.Set("role", fs.Role)
	v.Set("family", fs.JobFamily)
	v.Set("q", fs.Search)
	regions := slices.Clone(fs.Regions)
	slices.Sort(regions)
	v["region"] = regions
	for k, vals := range extra {
		v[k] = vals
	}
	return v.Encode()
}

func parseLimit(q url.Values) (int, error) {
	raw := q.Get("limit")
	if raw == "" {
		return view.DefaultTopN, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &ErrValidation{Field: "limit", Message: "must be a positive integer"}
	}
	return n, nil
}

func parseExpanded(q url.Values) (bool, error) {
	raw := q.Get("expanded")
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ErrValidation{Field: "expanded", Message: "must be true or false"}
	}
	return b, nil
}

// serveView answers from the view cache, building and storing the JSON body on a miss.
func (s *Server) serveView(w http.ResponseWriter, r *http.Request, name, query string, build func() (any, error)) {
	body, hit, err := s.views.Load(r.Context(), cache.ViewKey(name, query), func() ([]byte, error) {
		defer s.metrics.observeView(name, time.Now())
		v, err := build()
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	setCacheHeader(w, hit)
	s.rawJSONResponse(w, http.StatusOK, body)
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}

// filteredVendors applies the role selector, the vendor filters and period scaling.
func (s *Server) filteredVendors(fs analytics.FilterState) []types.VendorRecord {
	return analytics.FilterVendors(analytics.FilterByRole(s.dataset.Vendors, s.dataset.Roles, fs.Role), fs)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	fs, err := parseFilters(r.URL.Query())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.serveView(w, r, "summary", canonicalQuery(fs, nil), func() (any, error) {
		return analytics.BuildSummary(s.filteredVendors(fs)), nil
	})
}

func (s *Server) handleVendors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fs, err := parseFilters(q)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	limit, err := parseLimit(q)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	expanded, err := parseExpanded(q)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	extra := url.Values{"limit": {strconv.Itoa(limit)}, "expanded": {strconv.FormatBool(expanded)}}
	s.serveView(w, r, "vendors", canonicalQuery(fs, extra), func() (any, error) {
		vendors := s.filteredVendors(fs)
		for i := range vendors {
			vendors[i].History = nil
		}
		top := view.NewTopN(vendors, limit, func(v types.VendorRecord) int { return v.PassRate })
		top.Expanded = expanded
		return top.Page(), nil
	})
}

func (s *Server) handleRoles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fs, err := parseFilters(q)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	limit, err := parseLimit(q)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	expanded, err := parseExpanded(q)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	extra := url.Values{"limit": {strconv.Itoa(limit)}, "expanded": {strconv.FormatBool(expanded)}}
	s.serveView(w, r, "roles", canonicalQuery(fs, extra), func() (any, error) {
		stats := analytics.RoleStats(analytics.RolesForFilters(s.dataset, fs))
		top := view.NewTopN(stats, limit, func(r analytics.RoleStat) int { return r.Volume })
		top.Expanded = expanded
		return top.Page(), nil
	})
}

// passRateResponse is a pass-rate chart with its value axis
type passRateResponse struct {
	Tab analytics.Tab `json:"tab"`
	analytics.PassRateData
	Ticks view.Ticks `json:"ticks"`
}

// placementsResponse is a placements chart with its value axis
type placementsResponse struct {
	Tab analytics.Tab `json:"tab"`
	analytics.PlacementsData
	Ticks view.Ticks `json:"ticks"`
}

func (s *Server) handlePassRate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fs, err := parseFilters(q)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	tab, err := analytics.ParseTab(q.Get("tab"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.serveView(w, r, "pass-rate", canonicalQuery(fs, url.Values{"tab": {string(tab)}}), func() (any, error) {
		data, err := analytics.BuildPassRate(s.dataset, tab, fs)
		if err != nil {
			return nil, err
		}
		maxValue := 0
		for _, item := range data.Items {
			maxValue = max(maxValue, item.Percentage)
		}
		return passRateResponse{
			Tab:          tab,
			PassRateData: data,
			Ticks:        view.NiceTicks(float64(maxValue), view.DefaultTickCount),
		}, nil
	})
}

func (s *Server) handlePlacements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fs, err := parseFilters(q)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	tab, err := analytics.ParseTab(q.Get("tab"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.serveView(w, r, "placements", canonicalQuery(fs, url.Values{"tab": {string(tab)}}), func() (any, error) {
		data, err := analytics.BuildPlacements(s.dataset, tab, fs)
		if err != nil {
			return nil, err
		}
		maxValue := 0
		for _, item := range data.Items {
			maxValue = max(maxValue, item.Count)
		}
		return placementsResponse{
			Tab:            tab,
			PlacementsData: data,
			Ticks:          view.NiceTicks(float64(maxValue), view.DefaultTickCount),
		}, nil
	})
}

// jobFamiliesResponse lists the top families; Vendors is populated only for expanded ones
type jobFamiliesResponse struct {
	Families []analytics.JobFamilyStat `json:"families"`
	Expanded []string                  `json:"expanded"`
	Ticks    view.Ticks                `json:"ticks"`
}

func (s *Server) handleJobFamilies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fs, err := parseFilters(q)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	expanded := view.ParseExpandSet(q["expanded"])

	s.serveView(w, r, "job-families", canonicalQuery(fs, url.Values{"expanded": expanded.IDs()}), func() (any, error) {
		stats := analytics.JobFamilyStats(s.dataset, fs)
		maxValue := 0
		for i := range stats {
			maxValue = max(maxValue, stats[i].AvgPassRate)
			if !expanded.IsExpanded(stats[i].ID) {
				stats[i].Vendors = nil
			}
		}
		return jobFamiliesResponse{
			Families: stats,
			Expanded: expanded.IDs(),
			Ticks:    view.NiceTicks(float64(maxValue), view.DefaultTickCount),
		}, nil
	})
}

// funnelStageView is a funnel stage with its conversion from the first stage
type funnelStageView struct {
	analytics.FunnelStage
	Conversion string `json:"conversion"`
}

func (s *Server) handleFunnel(w http.ResponseWriter, r *http.Request) {
	fs, err := parseFilters(r.URL.Query())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.serveView(w, r, "funnel", canonicalQuery(fs, nil), func() (any, error) {
		stages := analytics.FunnelStages(s.dataset, fs)
		out := make([]funnelStageView, 0, len(stages))
		for _, st := range stages {
			out = append(out, funnelStageView{
				FunnelStage: st,
				Conversion:  analytics.FormatPercent(float64(st.Count), float64(stages[0].Count)),
			})
		}
		return map[string]any{"stages": out}, nil
	})
}

func (s *Server) handleEfficiency(w http.ResponseWriter, r *http.Request) {
	fs, err := parseFilters(r.URL.Query())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.serveView(w, r, "efficiency", canonicalQuery(fs, nil), func() (any, error) {
		return map[string]any{"points": analytics.VendorEfficiency(s.filteredVendors(fs))}, nil
	})
}

// rateCardView is a rate card with its discount applied
type rateCardView struct {
	types.RateCard
	EffectivePlacementFee float64 `json:"effective_placement_fee"`
}

func (s *Server) handleRateCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fs, err := parseFilters(q)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	filter := analytics.RateCardFilter{
		Vendor:       fs.Vendor,
		Regions:      fs.Regions,
		RoleCategory: q.Get("category"),
		Tier:         q.Get("tier"),
	}

	extra := url.Values{"category": {filter.RoleCategory}, "tier": {filter.Tier}}
	s.serveView(w, r, "rate-cards", canonicalQuery(fs, extra), func() (any, error) {
		cards := analytics.FilterRateCards(s.dataset.RateCards, s.dataset.Vendors, filter)
		out := make([]rateCardView, 0, len(cards))
		for _, c := range cards {
			out = append(out, rateCardView{RateCard: c, EffectivePlacementFee: analytics.EffectivePlacementFee(c)})
		}
		return map[string]any{"items": out, "total": len(out)}, nil
	})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	fs, err := parseFilters(r.URL.Query())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.serveView(w, r, "regions", canonicalQuery(fs, nil), func() (any, error) {
		roles := analytics.RolesForFilters(s.dataset, fs)
		return map[string]any{"regions": analytics.RegionalInsights(s.dataset.RateCards, roles)}, nil
	})
}

// trendResponse is a vendor's history within the selected period
type trendResponse struct {
	VendorID string           `json:"vendor_id"`
	Name     string           `json:"name"`
	Period   analytics.Period `json:"period"`
	Points   []types.Snapshot `json:"points"`
}

func (s *Server) handleVendorTrend(w http.ResponseWriter, r *http.Request) {
	fs, err := parseFilters(r.URL.Query())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	id := r.PathValue("id")
	vendor := s.dataset.VendorByID(id)
	if vendor == nil {
		err := &ErrVendorNotFound{VendorID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.serveView(w, r, "trend", url.Values{"id": {id}, "period": {string(fs.Period)}}.Encode(), func() (any, error) {
		return trendResponse{
			VendorID: vendor.ID,
			Name:     vendor.Name,
			Period:   fs.Period,
			Points:   analytics.TrendWindow(vendor.History, fs.Period, s.reference),
		}, nil
	})
}
