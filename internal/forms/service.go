package forms

import (
	"context"
	"strconv"
	"strings"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/format"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentMixed = "mixed"
)

// ServiceForm is the billing dialog. Mixed payments split the total between
// cash and card; the split must add up.
type ServiceForm struct {
	ID             int64
	ClientName     string
	Phone          string
	Amount         string
	CashAmount     string
	CardAmount     string
	PaymentType    string
	ServiceTypeIDs []int64
	Status         string
	RejectComment  string
}

func EditService(s *models.Service) ServiceForm {
	f := ServiceForm{
		ID:            s.ID,
		ClientName:    s.ClientName,
		Phone:         s.Phone,
		Amount:        s.Amount,
		CashAmount:    s.CashAmount,
		CardAmount:    s.CardAmount,
		PaymentType:   s.PaymentType,
		Status:        s.Status,
		RejectComment: s.RejectComment,
	}
	for _, t := range s.ServiceTypes {
		f.ServiceTypeIDs = append(f.ServiceTypeIDs, t.ID)
	}
	return f
}

func (f *ServiceForm) IsEdit() bool { return f.ID > 0 }

func (f *ServiceForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.ClientName) == "" {
		errs["client_name"] = "required"
	}
	if format.DigitsOnly(f.Phone) == "" {
		errs["phone"] = "required"
	}
	if len(f.ServiceTypeIDs) == 0 {
		errs["service_types"] = "pick at least one"
	}
	if !validAmount(f.Amount) {
		errs["amount"] = "invalid amount"
	}

	switch f.PaymentType {
	case PaymentCash, PaymentCard:
	case PaymentMixed:
		if !validAmount(f.CashAmount) || !validAmount(f.CardAmount) {
			errs["split"] = "both parts required"
			break
		}
		total, _ := strconv.ParseFloat(f.Amount, 64)
		cash, _ := strconv.ParseFloat(f.CashAmount, 64)
		card, _ := strconv.ParseFloat(f.CardAmount, 64)
		if diff := total - cash - card; diff > 0.009 || diff < -0.009 {
			errs["split"] = "cash and card must add up to the total"
		}
	default:
		errs["payment_type"] = "required"
	}

	if f.Status == "rejected" && strings.TrimSpace(f.RejectComment) == "" {
		errs["reject_comment"] = "required when rejecting"
	}
	return errs
}

func (f *ServiceForm) input() api.ServiceInput {
	in := api.ServiceInput{
		ID:             f.ID,
		ClientName:     strings.TrimSpace(f.ClientName),
		Phone:          format.DigitsOnly(f.Phone),
		Amount:         f.Amount,
		PaymentType:    f.PaymentType,
		ServiceTypeIDs: f.ServiceTypeIDs,
		Status:         f.Status,
		RejectComment:  strings.TrimSpace(f.RejectComment),
	}
	switch f.PaymentType {
	case PaymentCash:
		in.CashAmount = f.Amount
	case PaymentCard:
		in.CardAmount = f.Amount
	case PaymentMixed:
		in.CashAmount = f.CashAmount
		in.CardAmount = f.CardAmount
	}
	return in
}

type serviceSaver interface {
	Create(ctx context.Context, input api.ServiceInput) (*models.Service, error)
	Update(ctx context.Context, id int64, input api.ServiceInput) (*models.Service, error)
}

func (f *ServiceForm) Submit(ctx context.Context, view serviceSaver) (*models.Service, error) {
	if errs := f.Validate(); !errs.Ok() {
		return nil, errs
	}
	if f.IsEdit() {
		return view.Update(ctx, f.ID, f.input())
	}
	return view.Create(ctx, f.input())
}
