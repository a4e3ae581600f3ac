package toisports

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/usecase"
)

// The pages use minified, stable class names; these selectors track the
// markup as served in the 2025/26 seasons.
const (
	selResultCard    = "a.ejgS5.DuVhK.ra0fi"
	selScheduleCard  = "a.ejgS5.GsXWY"
	selDateBlock     = "div.ieLQJ"
	selVenueBlock    = "div.y_Y0B"
	selLocationBlock = "div.otuuQ"
	selLabel         = "div.cONiu"
	selTeamsBlock    = "div.C81t6"
	selTeamRow       = "div.U5fiW"
	selTeamName      = "div.WkFo7"
	selScoreBlock    = "div.hPK5L"
	selScoreText     = "div.n7m6x"
	selOversText     = "div.WbVlv"
	selOutcome       = "div.bmG9a"
	selScheduleBody  = "div.B2Exg"

	selDetailSection  = "div.cQWcQ"
	selDetailH2H      = "div.tVu1k"
	selDetailH2HItem  = "div.OAk24"
	selDetailPerf     = "div.t66hp"
	selDetailPerfRow  = "div.U5ktS"
	selDetailPerfTeam = "div.CCcyO"
	selDetailPerfStat = "div.vtQ9d"
	selDetailPlayed   = "strong._donp"
	selDetailWon      = "strong.PqVJY"
	selDetailPct      = "strong.OngzT"
)

var firstNumber = regexp.MustCompile(`\d+`)

// Detail-page head-to-head lines name teams by franchise shorthand.
var detailTokens = map[string]string{
	"Chennai Super Kings":         "csk",
	"Mumbai Indians":              "mi",
	"Royal Challengers Bengaluru": "rcb",
	"Kolkata Knight Riders":       "kkr",
	"Sunrisers Hyderabad":         "srh",
	"Delhi Capitals":              "dc",
	"Punjab Kings":                "pbks",
	"Rajasthan Royals":            "rr",
	"Gujarat Titans":              "gt",
	"Lucknow Super Giants":        "lsg",
}

func parseResults(doc *goquery.Document) []usecase.RawMatchRecord {
	var records []usecase.RawMatchRecord

	doc.Find(selResultCard).Each(func(_ int, card *goquery.Selection) {
		dateBlock := card.Find(selDateBlock).First()
		dateTime := strings.TrimSpace(dateBlock.Find("div").First().Text())

		venueBlock := dateBlock.Find(selVenueBlock).First()
		venue := strings.TrimSpace(venueBlock.Text())
		location := strings.TrimSpace(venueBlock.Find(selLocationBlock + " p span").First().Text())
		label := strings.TrimSpace(card.Find(selLabel).First().Text())

		var entries []usecase.RawInningsEntry
		card.Find(selTeamsBlock).First().Find(selTeamRow).Each(func(_ int, row *goquery.Selection) {
			name := strings.TrimSpace(row.Find(selTeamName).First().Text())
			if name == "" {
				return
			}
			scoreBlock := row.Find(selScoreBlock).First()
			score := strings.TrimSpace(scoreBlock.Find(selScoreText).First().Text())
			if score == "" {
				score = "0"
			}
			overs := strings.TrimSpace(scoreBlock.Find(selOversText).First().Text())
			if overs == "" {
				overs = "0.0 ov"
			}
			entries = append(entries, usecase.RawInningsEntry{Name: name, Score: score, Overs: overs})
		})
		if len(entries) != 2 {
			return
		}

		records = append(records, usecase.RawMatchRecord{
			DateTime: dateTime,
			Venue:    venue,
			Location: location,
			Label:    label,
			Team1:    entries[0],
			Team2:    entries[1],
			Outcome:  strings.TrimSpace(card.Find(selOutcome).First().Text()),
		})
	})
	return records
}

type scheduleEntry struct {
	record     usecase.RawFixtureRecord
	detailPath string
}

func parseSchedule(doc *goquery.Document) []scheduleEntry {
	var entries []scheduleEntry

	doc.Find(selScheduleCard).Each(func(_ int, card *goquery.Selection) {
		dateBlock := card.Find(selDateBlock).First()
		dateTime := strings.TrimSpace(dateBlock.Find("div").First().Text())
		venue := strings.TrimSpace(dateBlock.Find(selVenueBlock).First().Find(selLocationBlock + " span").First().Text())

		body := card.Find(selScheduleBody).First()
		label := strings.TrimSpace(body.Find(selLabel).First().Text())

		var teams []string
		body.Find(selTeamsBlock).First().Find(selTeamRow).Each(func(_ int, row *goquery.Selection) {
			teams = append(teams, strings.TrimSpace(row.Find(selTeamName).First().Text()))
		})
		if len(teams) != 2 || teams[0] == "TBC" || teams[1] == "TBC" {
			return
		}

		detailPath, _ := card.Attr("href")
		entries = append(entries, scheduleEntry{
			record: usecase.RawFixtureRecord{
				DateTime: dateTime,
				Venue:    venue,
				Label:    label,
				Team1:    teams[0],
				Team2:    teams[1],
			},
			detailPath: detailPath,
		})
	})
	return entries
}

// parseFixtureDetail reads the head-to-head box and the previous-season
// table from a fixture page. Missing pieces come back zero-valued; the
// probability model treats them as neutral.
func parseFixtureDetail(doc *goquery.Document, team1, team2 string) (match.HeadToHead, map[string]match.SeasonRecord) {
	var h2h match.HeadToHead
	lastSeason := map[string]match.SeasonRecord{}

	section := doc.Find(selDetailSection).First()
	if section.Length() == 0 {
		return h2h, lastSeason
	}

	token1 := detailToken(team1)
	token2 := detailToken(team2)
	section.Find(selDetailH2H).First().Find(selDetailH2HItem).Each(func(_ int, item *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(item.Text()))
		digits := firstNumber.FindString(text)
		if digits == "" {
			return
		}
		value, err := strconv.Atoi(digits)
		if err != nil {
			return
		}
		switch {
		case strings.Contains(text, "played"):
			h2h.Played = value
		case strings.Contains(text, token1):
			h2h.Team1Wins = value
		case strings.Contains(text, token2):
			h2h.Team2Wins = value
		}
	})

	section.Find(selDetailPerf).First().Find(selDetailPerfRow).Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			// Header row.
			return
		}
		name := strings.TrimSpace(row.Find(selDetailPerfTeam + " span").First().Text())
		if name == "" {
			return
		}
		stats := row.Find(selDetailPerfStat).First()
		record := match.SeasonRecord{
			Played: intText(stats.Find(selDetailPlayed).First()),
			Won:    intText(stats.Find(selDetailWon).First()),
			WinPct: 50,
		}
		if pctText := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(stats.Find(selDetailPct).First().Text()), "%")); pctText != "" {
			if pct, err := strconv.ParseFloat(pctText, 64); err == nil {
				record.WinPct = pct
			}
		}
		lastSeason[name] = record
	})

	return h2h, lastSeason
}

func detailToken(label string) string {
	if token, ok := detailTokens[label]; ok {
		return token
	}
	return strings.ToLower(label)
}

func intText(sel *goquery.Selection) int {
	value, err := strconv.Atoi(strings.TrimSpace(sel.Text()))
	if err != nil {
		return 0
	}
	return value
}
