package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tealeg/xlsx"

	"github.com/mgridtech/carfixit/internal/order/domain"
)

type Service struct {
	gw    Gateway
	users UserResolver
	log   *slog.Logger
}

func NewService(gw Gateway, users UserResolver, log *slog.Logger) *Service {
	return &Service{gw: gw, users: users, log: log}
}

func (s *Service) History(ctx context.Context) ([]domain.Order, error) {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return s.gw.History(ctx, userID)
}

func (s *Service) Details(ctx context.Context, orderID int) (domain.Order, error) {
	if _, err := s.users.CurrentUserID(); err != nil {
		return domain.Order{}, err
	}
	return s.gw.Details(ctx, orderID)
}

func (s *Service) Cancel(ctx context.Context, orderID int) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}
	if err := s.gw.Cancel(ctx, userID, orderID); err != nil {
		return err
	}
	s.log.Info("order cancelled", slog.Int("order_id", orderID), slog.Int("user_id", userID))
	return nil
}

var exportHeader = []string{
	"Order ID", "Placed", "Appointment", "Slot", "Type", "Address", "Payment", "Status", "Total (INR)",
}

// Export writes the order history to an .xlsx workbook, one row per order.
func (s *Service) Export(ctx context.Context, path string) error {
	orders, err := s.History(ctx)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("export orders: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range exportHeader {
		header.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		placed := ""
		if !o.PlacedAt.IsZero() {
			placed = o.PlacedAt.Format("2006-01-02 15:04")
		}
		row.AddCell().SetValue(placed)
		row.AddCell().SetValue(o.AppointmentDate)
		row.AddCell().SetValue(o.AppointmentTime)
		row.AddCell().SetValue(o.DeliveryType)
		row.AddCell().SetValue(o.Address)
		row.AddCell().SetValue(o.PaymentMethod)
		row.AddCell().SetValue(o.Status)
		row.AddCell().SetFloatWithFormat(o.TotalValue, "0.00")
	}

	if err := file.Save(path); err != nil {
		return fmt.Errorf("export orders: %w", err)
	}
	s.log.Info("orders exported", slog.Int("count", len(orders)), slog.String("path", path))
	return nil
}
