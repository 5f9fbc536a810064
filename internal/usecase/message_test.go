package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/capitania/consimar/internal/domain"
)

func newMessageFixture() (*mockVesselRepo, *mockMessageRepo, *MessageUsecase) {
	vessels := newMockVesselRepo()
	messages := &mockMessageRepo{}
	return vessels, messages, NewMessageUsecase(messages, vessels, &mockSignal{})
}

func TestSendMessage(t *testing.T) {
	vessels, messages, uc := newMessageFixture()
	vessels.byFolio["F-101"] = despatchedVessel("F-101", "Marina Norte", time.Now(), 3600)

	in := SendMessageInput{Folio: "F-101", Metodo: domain.MetodoWhatsApp, Texto: "Regrese a puerto"}
	sent, err := uc.Send(context.Background(), in, adminActor())
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if sent.Destinatario != "Embarcación F-101 (F-101)" {
		t.Errorf("unexpected recipient: %s", sent.Destinatario)
	}
	if len(messages.msgs) != 1 {
		t.Fatal("expected one stored message")
	}
}

func TestSendMessagePublishFailureDoesNotFail(t *testing.T) {
	vessels := newMockVesselRepo()
	messages := &mockMessageRepo{}
	uc := NewMessageUsecase(messages, vessels, failingSignal{})
	vessels.byFolio["F-101"] = despatchedVessel("F-101", "Marina Norte", time.Now(), 3600)

	in := SendMessageInput{Folio: "F-101", Metodo: domain.MetodoSMS, Texto: "hola"}
	if _, err := uc.Send(context.Background(), in, adminActor()); err != nil {
		t.Fatalf("a failed change event must not fail the send: %v", err)
	}
	if len(messages.msgs) != 1 {
		t.Fatal("expected the message stored despite the publish failure")
	}
}

func TestSendMessageOperadorZoneCheck(t *testing.T) {
	vessels, _, uc := newMessageFixture()
	vessels.byFolio["F-101"] = despatchedVessel("F-101", "Marina Sur", time.Now(), 3600)
	actor := domain.User{ID: "op-1", Role: domain.RoleOperador, Basificacion: "Marina Norte"}

	in := SendMessageInput{Folio: "F-101", Metodo: domain.MetodoSMS, Texto: "hola"}
	_, err := uc.Send(context.Background(), in, actor)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSendMessageRoleRestricted(t *testing.T) {
	vessels, _, uc := newMessageFixture()
	vessels.byFolio["F-101"] = despatchedVessel("F-101", "Marina Norte", time.Now(), 3600)
	folio := "F-101"
	actor := domain.User{ID: "prop-1", Role: domain.RoleOperadorPropietario, FolioEmbarcacionPropietario: &folio}

	in := SendMessageInput{Folio: "F-101", Metodo: domain.MetodoSMS, Texto: "hola"}
	_, err := uc.Send(context.Background(), in, actor)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSendMessageValidation(t *testing.T) {
	_, _, uc := newMessageFixture()

	in := SendMessageInput{Folio: "F-101", Metodo: "paloma", Texto: ""}
	_, err := uc.Send(context.Background(), in, adminActor())
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fields["texto"] == "" || verr.Fields["metodo"] == "" {
		t.Fatalf("expected texto and metodo errors, got %v", verr.Fields)
	}
}
