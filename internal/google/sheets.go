// Package google mirrors the day's reservations into a shared spreadsheet
// the clinic's reception watches alongside the console.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/format"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const bookingsSheet = "Bookings"

var ErrRowNotFound = errors.New("booking row not found")

type SheetsService struct {
	service       *sheets.Service
	spreadsheetID string

	// row index per booking id, 1-based sheet rows
	cacheMu  sync.RWMutex
	rowCache map[int64]int
}

func NewSheetsService(ctx context.Context, credentialsFile, spreadsheetID string) (*SheetsService, error) {
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}

	return &SheetsService{
		service:       srv,
		spreadsheetID: spreadsheetID,
		rowCache:      make(map[int64]int),
	}, nil
}

// TestConnection проверяет доступ к таблице
func (s *SheetsService) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, bookingsSheet+"!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// ServiceAccountEmail reads the account email out of the credentials file so
// operators know whom to share the spreadsheet with.
func ServiceAccountEmail(credentialsFile string) (string, error) {
	file, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", err
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(file, &creds); err != nil {
		return "", err
	}
	return creds.ClientEmail, nil
}

func bookingRowValues(b *models.Booking) []interface{} {
	return []interface{}{
		b.ID,
		format.Date(b.ReservationDate),
		b.Time,
		b.Status,
		b.ClientName,
		b.Phone,
		b.Doctor.FullName(),
		format.Price(b.AdvanceAmount),
		b.Note,
		format.DateTime(b.UpdatedAt),
	}
}

// ReplaceBookingsSheet полностью перезаписывает лист с заявками
func (s *SheetsService) ReplaceBookingsSheet(ctx context.Context, bookings []models.Booking) error {
	clearRange := bookingsSheet + "!A2:Z" // заголовки в строке 1
	_, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear bookings sheet: %w", err)
	}

	var values [][]interface{}
	for i := range bookings {
		values = append(values, bookingRowValues(&bookings[i]))
	}

	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, bookingsSheet+"!A2", &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update bookings sheet: %w", err)
	}

	s.cacheMu.Lock()
	s.rowCache = make(map[int64]int)
	for i := range bookings {
		s.rowCache[bookings[i].ID] = i + 2 // данные начинаются со строки 2
	}
	s.cacheMu.Unlock()

	return nil
}

// AppendBooking добавляет одну заявку в конец листа
func (s *SheetsService) AppendBooking(ctx context.Context, booking *models.Booking) error {
	if booking == nil {
		return fmt.Errorf("booking is nil")
	}

	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, bookingsSheet+"!A:A", &sheets.ValueRange{
		Values: [][]interface{}{bookingRowValues(booking)},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return err
}

// UpsertBooking updates the booking's row in place, appending when the id is
// not on the sheet yet.
func (s *SheetsService) UpsertBooking(ctx context.Context, booking *models.Booking) error {
	if booking == nil {
		return fmt.Errorf("booking is nil")
	}

	rowIdx, err := s.findBookingRow(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return s.AppendBooking(ctx, booking)
		}
		return err
	}

	rangeData := fmt.Sprintf("%s!A%d:J%d", bookingsSheet, rowIdx, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, rangeData, &sheets.ValueRange{
		Values: [][]interface{}{bookingRowValues(booking)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

// DeleteBookingRow clears the row holding bookingID.
func (s *SheetsService) DeleteBookingRow(ctx context.Context, bookingID int64) error {
	rowIdx, err := s.findBookingRow(ctx, bookingID)
	if err != nil {
		return err
	}

	rangeData := fmt.Sprintf("%s!A%d:J%d", bookingsSheet, rowIdx, rowIdx)
	_, err = s.service.Spreadsheets.Values.Clear(s.spreadsheetID, rangeData, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err == nil {
		s.cacheMu.Lock()
		delete(s.rowCache, bookingID)
		s.cacheMu.Unlock()
	}
	return err
}

// findBookingRow locates the 1-based row for a booking id in column A.
func (s *SheetsService) findBookingRow(ctx context.Context, bookingID int64) (int, error) {
	if bookingID == 0 {
		return 0, fmt.Errorf("booking id is required")
	}

	s.cacheMu.RLock()
	row, ok := s.rowCache[bookingID]
	s.cacheMu.RUnlock()
	if ok {
		return row, nil
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, bookingsSheet+"!A:A").Context(ctx).Do()
	if err != nil {
		return 0, err
	}

	for i, r := range resp.Values {
		if len(r) == 0 {
			continue
		}
		var id int64
		switch v := r[0].(type) {
		case float64:
			id = int64(v)
		case string:
			fmt.Sscanf(v, "%d", &id)
		}
		if id == bookingID {
			rowIdx := i + 1 // Values are zero-based; sheet rows are 1-based
			s.cacheMu.Lock()
			s.rowCache[bookingID] = rowIdx
			s.cacheMu.Unlock()
			return rowIdx, nil
		}
	}

	return 0, ErrRowNotFound
}
