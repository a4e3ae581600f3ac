package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wicketwatch/wicketwatch/internal/domain/ledger"
	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/standings"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
	"github.com/wicketwatch/wicketwatch/internal/usecase"
)

type Handler struct {
	ledgerService  *usecase.LedgerService
	refreshService *usecase.RefreshService
	logger         *logging.Logger
}

func NewHandler(
	ledgerService *usecase.LedgerService,
	refreshService *usecase.RefreshService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		ledgerService:  ledgerService,
		refreshService: refreshService,
		logger:         logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	table, err := h.ledgerService.Standings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(table))
	for _, row := range table {
		items = append(items, standingToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPastMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPastMatches")
	defer span.End()

	facts, err := h.ledgerService.PastMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list past matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pastMatchDTO, 0, len(facts))
	for _, fact := range facts {
		items = append(items, factToDTO(fact))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingMatches")
	defer span.End()

	fixtures, err := h.ledgerService.UpcomingMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list upcoming matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]upcomingMatchDTO, 0, len(fixtures))
	for _, fixture := range fixtures {
		items = append(items, fixtureToDTO(fixture))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMetadata")
	defer span.End()

	meta, err := h.ledgerService.Metadata(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get metadata failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, metadataToDTO(meta))
}

func (h *Handler) RunRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshJob")
	defer span.End()

	force := false
	if raw := strings.TrimSpace(r.URL.Query().Get("force")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.WarnContext(ctx, "invalid force parameter", "value", raw)
		} else {
			force = parsed
		}
	}

	result, err := h.refreshService.Refresh(ctx, force)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh job failed", "force", force, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, refreshJobDTO{
		Status:            "ok",
		Forced:            result.Forced,
		PastInserted:      result.PastInserted,
		FixturesInserted:  result.FixturesInserted,
		FixturesPromoted:  result.FixturesPromoted,
		RecordsSkipped:    result.RecordsSkipped,
		StandingsReplaced: result.StandingsReplaced,
		RefreshedAt:       result.RefreshedAt.UTC().Format(time.RFC3339),
	})
}

// Response field names keep the upstream scoreboard convention so existing
// consumers of the original feed can switch over without remapping.
type standingRowDTO struct {
	Position   int     `json:"POS"`
	Team       string  `json:"TEAM"`
	Played     int     `json:"P"`
	Wins       int     `json:"W"`
	Losses     int     `json:"L"`
	NoResults  int     `json:"NR"`
	NetRunRate float64 `json:"NRR"`
	For        string  `json:"FOR"`
	Against    string  `json:"AGAINST"`
	Points     int     `json:"PTS"`
	RecentForm string  `json:"RECENT_FORM"`
}

type pastMatchDTO struct {
	DateTime string `json:"Date_Time"`
	Venue    string `json:"Venue"`
	Location string `json:"Location"`
	Match    string `json:"Match"`
	Team1    string `json:"Team_1"`
	Team2    string `json:"Team_2"`
	Result   string `json:"Result"`
}

type headToHeadDTO struct {
	Played    int `json:"played"`
	Team1Wins int `json:"team1_wins"`
	Team2Wins int `json:"team2_wins"`
}

type seasonRecordDTO struct {
	Played int     `json:"played"`
	Won    int     `json:"won"`
	WinPct float64 `json:"win_pct"`
}

type probabilityDTO struct {
	Team1 float64 `json:"Team_1"`
	Team2 float64 `json:"Team_2"`
}

type upcomingMatchDTO struct {
	DateTime    string                     `json:"Date_Time"`
	Venue       string                     `json:"Venue"`
	Location    string                     `json:"Location"`
	Match       string                     `json:"Match"`
	Team1       string                     `json:"Team_1"`
	Team2       string                     `json:"Team_2"`
	Result      string                     `json:"Result"`
	HeadToHead  headToHeadDTO              `json:"head_to_head"`
	LastSeason  map[string]seasonRecordDTO `json:"last_year_performance"`
	Probability *probabilityDTO            `json:"Probability,omitempty"`
}

type metadataDTO struct {
	LastUpdated     string `json:"lastUpdated"`
	LastPastMatch   string `json:"lastPastMatch,omitempty"`
	LastFutureMatch string `json:"lastFutureMatch,omitempty"`
}

type refreshJobDTO struct {
	Status            string `json:"status"`
	Forced            bool   `json:"forced"`
	PastInserted      int    `json:"pastInserted"`
	FixturesInserted  int    `json:"fixturesInserted"`
	FixturesPromoted  int    `json:"fixturesPromoted"`
	RecordsSkipped    int    `json:"recordsSkipped"`
	StandingsReplaced bool   `json:"standingsReplaced"`
	RefreshedAt       string `json:"refreshedAt"`
}

func standingToDTO(row standings.TeamStanding) standingRowDTO {
	return standingRowDTO{
		Position:   row.Position,
		Team:       row.Team.String(),
		Played:     row.Played,
		Wins:       row.Wins,
		Losses:     row.Losses,
		NoResults:  row.NoResults,
		NetRunRate: row.NetRunRate,
		For:        row.ForDisplay(),
		Against:    row.AgainstDisplay(),
		Points:     row.Points,
		RecentForm: strings.Join(row.RecentForm, " "),
	}
}

func factToDTO(fact match.Fact) pastMatchDTO {
	return pastMatchDTO{
		DateTime: fact.DateTimeRaw,
		Venue:    fact.Venue,
		Location: fact.Location,
		Match:    fact.Label,
		Team1:    fact.Team1Display(),
		Team2:    fact.Team2Display(),
		Result:   fact.Outcome,
	}
}

func fixtureToDTO(fixture match.Fixture) upcomingMatchDTO {
	lastSeason := make(map[string]seasonRecordDTO, len(fixture.LastSeason))
	for identity, record := range fixture.LastSeason {
		lastSeason[identity.String()] = seasonRecordDTO{
			Played: record.Played,
			Won:    record.Won,
			WinPct: record.WinPct,
		}
	}

	dto := upcomingMatchDTO{
		DateTime: fixture.DateTimeRaw,
		Venue:    fixture.Venue,
		Location: fixture.Venue,
		Match:    fixture.Label,
		Team1:    fixture.Team1.String(),
		Team2:    fixture.Team2.String(),
		Result:   fixture.Outcome,
		HeadToHead: headToHeadDTO{
			Played:    fixture.HeadToHead.Played,
			Team1Wins: fixture.HeadToHead.Team1Wins,
			Team2Wins: fixture.HeadToHead.Team2Wins,
		},
		LastSeason: lastSeason,
	}
	if fixture.Probability != nil {
		dto.Probability = &probabilityDTO{
			Team1: fixture.Probability.Team1Pct,
			Team2: fixture.Probability.Team2Pct,
		}
	}

	return dto
}

func metadataToDTO(meta ledger.Metadata) metadataDTO {
	dto := metadataDTO{}
	if !meta.LastRefreshed.IsZero() {
		dto.LastUpdated = meta.LastRefreshed.UTC().Format(time.RFC3339)
	}
	if !meta.LastPastMatch.IsZero() {
		dto.LastPastMatch = meta.LastPastMatch.UTC().Format(time.RFC3339)
	}
	if !meta.LastFutureMatch.IsZero() {
		dto.LastFutureMatch = meta.LastFutureMatch.UTC().Format(time.RFC3339)
	}

	return dto
}
