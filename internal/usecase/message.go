package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/capitania/consimar/internal/domain"
)

// SendMessageInput records a dispatch notification. The SMS/WhatsApp deep
// link itself opens on the client; the server only keeps the log entry.
type SendMessageInput struct {
	Folio  string `json:"folio"`
	Metodo string `json:"metodo"`
	Texto  string `json:"texto"`
}

// MessageUsecase keeps the append-only dispatch message history.
type MessageUsecase struct {
	messages MessageRepository
	vessels  VesselRepository
	signal   SignalPublisher
}

func NewMessageUsecase(messages MessageRepository, vessels VesselRepository, signal SignalPublisher) *MessageUsecase {
	return &MessageUsecase{messages: messages, vessels: vessels, signal: signal}
}

func (u *MessageUsecase) Send(ctx context.Context, in SendMessageInput, actor domain.User) (domain.Message, error) {
	// Only Administrador and Operador send dispatch messages.
	if actor.Role != domain.RoleAdministrador && actor.Role != domain.RoleOperador {
		return domain.Message{}, domain.ErrForbidden
	}
	errs := map[string]string{}
	if in.Texto == "" {
		errs["texto"] = "El mensaje no puede estar vacío."
	}
	if in.Metodo != domain.MetodoSMS && in.Metodo != domain.MetodoWhatsApp {
		errs["metodo"] = "Método de envío inválido."
	}
	if len(errs) > 0 {
		return domain.Message{}, domain.ValidationError{Fields: errs}
	}

	v, err := u.vessels.GetByFolio(ctx, in.Folio)
	if err != nil {
		return domain.Message{}, pkgerrors.Wrap(err, "MessageUsecase.Send: vessel lookup failed")
	}
	if actor.Role == domain.RoleOperador && v.Basificacion != actor.Basificacion {
		return domain.Message{}, domain.ErrForbidden
	}

	m := domain.Message{
		ID:           uuid.NewString(),
		Destinatario: fmt.Sprintf("%s (%s)", v.NombreEmbarcacion, v.Folio),
		Metodo:       in.Metodo,
		Texto:        in.Texto,
		EnviadoPorID: actor.ID,
		CDate:        time.Now(),
	}
	if err := u.messages.Create(ctx, m); err != nil {
		return domain.Message{}, pkgerrors.Wrap(err, "MessageUsecase.Send: persist failed")
	}
	if err := u.signal.Publish(ctx, domain.Event{Type: "INSERT", Table: domain.TableMensajes, Key: m.ID}); err != nil {
		slog.ErrorContext(ctx, "failed to publish change event",
			slog.String("table", domain.TableMensajes),
			slog.String("error", err.Error()),
		)
	}
	return m, nil
}

func (u *MessageUsecase) History(ctx context.Context) ([]domain.Message, error) {
	return u.messages.List(ctx)
}
