package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
)

// ── Export business errors ──

var (
	ErrExportGenerateFail = errors.New("could not generate export file")
)

// ExportService renders session results as CSV or XLSX and the session
// agenda as an ICS calendar. Handlers set the HTTP headers; this layer
// only produces bytes and suggested filenames.
type ExportService interface {
	ExportSessionCSV(ctx context.Context, sessionID, callerID string) ([]byte, string, error)
	ExportSessionXLSX(ctx context.Context, sessionID, callerID string) (*bytes.Buffer, string, error)
	ExportSessionAgendaICS(ctx context.Context, sessionID, callerID string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// exportRows is the flattened result set shared by the CSV and XLSX
// renditions.
type exportRow struct {
	ActivityTitle   string
	SubmissionText  string
	ParticipantName string
	Stats           VoteStats
}

// BuildResultsCSV flattens results into the canonical CSV format:
// fixed header, one row per submission in input order, avg/stdev to two
// decimals and blank (not "0.00") when a submission has no votes.
func BuildResultsCSV(
	activities []model.Activity,
	submissions []model.Submission,
	votes []model.Vote,
	participants []model.Participant,
) string {
	rows := buildExportRows(activities, submissions, votes, participants)

	var b strings.Builder
	b.WriteString("activity_title,submission_text,participant_name,n,avg,stdev,total\n")
	for _, row := range rows {
		fields := []string{
			row.ActivityTitle,
			row.SubmissionText,
			row.ParticipantName,
			strconv.Itoa(row.Stats.N),
			formatStat(row.Stats.Avg, row.Stats.N),
			formatStat(row.Stats.Stdev, row.Stats.N),
			strconv.Itoa(row.Stats.Total),
		}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeCSVField(f))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func buildExportRows(
	activities []model.Activity,
	submissions []model.Submission,
	votes []model.Vote,
	participants []model.Participant,
) []exportRow {
	titleOf := make(map[string]string, len(activities))
	for _, act := range activities {
		title := act.Title
		if title == "" {
			title = act.Type
		}
		titleOf[act.ActivityID] = title
	}

	nameOf := make(map[string]string, len(participants))
	for _, p := range participants {
		if p.DisplayName != nil && *p.DisplayName != "" {
			nameOf[p.ParticipantID] = *p.DisplayName
		}
	}

	grouped := groupVotesBySubmission(votes)

	rows := make([]exportRow, 0, len(submissions))
	for _, s := range submissions {
		row := exportRow{
			SubmissionText: s.Text,
			Stats:          ComputeVoteStats(grouped[s.SubmissionID]),
		}
		if s.ActivityID != nil {
			row.ActivityTitle = titleOf[*s.ActivityID]
		}
		row.ParticipantName = participantName(s.ParticipantID, nameOf)
		rows = append(rows, row)
	}
	return rows
}

// participantName resolves a display name, falling back to "#" plus
// the first 6 characters of the id, or empty when there is no
// participant at all.
func participantName(participantID *string, nameOf map[string]string) string {
	if participantID == nil {
		return ""
	}
	if name, ok := nameOf[*participantID]; ok {
		return name
	}
	id := *participantID
	if len(id) > 6 {
		id = id[:6]
	}
	return "#" + id
}

// formatStat renders avg/stdev to two decimals; blank when there are
// no votes, to distinguish "no votes" from "average of zero".
func formatStat(v float64, n int) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// escapeCSVField quotes a field if and only if it contains a comma,
// double quote, or newline; internal quotes are doubled.
func escapeCSVField(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func (s *exportService) ExportSessionCSV(ctx context.Context, sessionID, callerID string) ([]byte, string, error) {
	session, rows, err := s.loadExportData(ctx, sessionID, callerID)
	if err != nil {
		return nil, "", err
	}

	csv := BuildResultsCSV(rows.activities, rows.submissions, rows.votes, rows.participants)
	filename := fmt.Sprintf("%s-results.csv", exportSlug(session.Name))
	return []byte(csv), filename, nil
}

func (s *exportService) ExportSessionXLSX(ctx context.Context, sessionID, callerID string) (*bytes.Buffer, string, error) {
	session, data, err := s.loadExportData(ctx, sessionID, callerID)
	if err != nil {
		return nil, "", err
	}

	rows := buildExportRows(data.activities, data.submissions, data.votes, data.participants)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	headers := []string{"Activity", "Submission", "Participant", "Votes", "Avg", "Stdev", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "B", 48)
	f.SetColWidth(sheet, "C", "C", 20)

	for i, row := range rows {
		values := []interface{}{
			row.ActivityTitle,
			row.SubmissionText,
			row.ParticipantName,
			row.Stats.N,
			formatStat(row.Stats.Avg, row.Stats.N),
			formatStat(row.Stats.Stdev, row.Stats.N),
			row.Stats.Total,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s-results.xlsx", exportSlug(session.Name))
	return buf, filename, nil
}

// ExportSessionAgendaICS renders one VEVENT per scheduled activity.
// Activities without a start time are skipped.
func (s *exportService) ExportSessionAgendaICS(ctx context.Context, sessionID, callerID string) ([]byte, string, error) {
	session, err := s.ownedSession(ctx, sessionID, callerID)
	if err != nil {
		return nil, "", err
	}

	activities, err := s.repo.Activity.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//SessionFoundry//Agenda//EN")

	for _, act := range activities {
		if act.StartsAt == nil {
			continue
		}
		event := cal.AddEvent(act.ActivityID + "@sessionfoundry")
		event.SetDtStampTime(time.Now().UTC())
		event.SetStartAt(act.StartsAt.UTC())
		if act.EndsAt != nil {
			event.SetEndAt(act.EndsAt.UTC())
		}
		title := act.Title
		if title == "" {
			title = act.Type
		}
		event.SetSummary(fmt.Sprintf("%s: %s", session.Name, title))
	}

	filename := fmt.Sprintf("%s-agenda.ics", exportSlug(session.Name))
	return []byte(cal.Serialize()), filename, nil
}

// loadExportData gathers the raw rows behind a session export.
type exportData struct {
	activities   []model.Activity
	submissions  []model.Submission
	votes        []model.Vote
	participants []model.Participant
}

func (s *exportService) loadExportData(ctx context.Context, sessionID, callerID string) (*model.Session, *exportData, error) {
	session, err := s.ownedSession(ctx, sessionID, callerID)
	if err != nil {
		return nil, nil, err
	}

	activities, err := s.repo.Activity.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	submissions, err := s.repo.Submission.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	votes, err := s.repo.Vote.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	participants, err := s.repo.Participant.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	return session, &exportData{
		activities:   activities,
		submissions:  submissions,
		votes:        votes,
		participants: participants,
	}, nil
}

func (s *exportService) ownedSession(ctx context.Context, sessionID, callerID string) (*model.Session, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.FacilitatorID != callerID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// exportSlug makes a session name safe for a filename.
func exportSlug(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, name)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "session"
	}
	return slug
}
