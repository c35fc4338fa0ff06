package services

import (
	"fmt"
	"time"

	"stockroom/internal/repos"
)

type ReportService struct {
	Reports *repos.ReportRepo
}

func NewReportService(reports *repos.ReportRepo) *ReportService {
	return &ReportService{Reports: reports}
}

// Summary totals revenue over [from, to]; blank bounds default to all history
// up to today.
func (s *ReportService) Summary(userID, from, to string) (repos.Summary, error) {
	if from == "" {
		from = "0001-01-01"
	}
	if to == "" {
		to = time.Now().UTC().Format("2006-01-02")
	}
	return s.Reports.Summary(userID, from, to)
}

func (s *ReportService) Daily(userID string, days int) ([]repos.Bucket, error) {
	if days < 1 || days > 90 {
		days = 7
	}
	return s.Reports.Daily(userID, days)
}

func (s *ReportService) Weekly(userID string, weeks int) ([]repos.Bucket, error) {
	if weeks < 1 || weeks > 52 {
		weeks = 8
	}
	return s.Reports.Weekly(userID, weeks)
}

// Monthly returns a dense 12-bucket series for the year; months without sales
// are zero-filled.
func (s *ReportService) Monthly(userID string, year int) ([]repos.Bucket, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	rows, err := s.Reports.Monthly(userID, year)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[string]repos.Bucket, len(rows))
	for _, b := range rows {
		byMonth[b.Key] = b
	}
	out := make([]repos.Bucket, 0, 12)
	for m := 1; m <= 12; m++ {
		key := fmt.Sprintf("%02d", m)
		if b, ok := byMonth[key]; ok {
			out = append(out, b)
			continue
		}
		out = append(out, repos.Bucket{Key: key})
	}
	return out, nil
}

func (s *ReportService) Yearly(userID string) ([]repos.Bucket, error) {
	return s.Reports.Yearly(userID)
}

func (s *ReportService) TopProducts(userID string, limit int) ([]repos.TopProductRow, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}
	return s.Reports.TopProducts(userID, limit)
}
