package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/capitania/consimar/internal/crypto"
	"github.com/capitania/consimar/internal/domain"
)

// NewUserInput is the account creation form.
type NewUserInput struct {
	Username                     string      `json:"username"`
	Password                     string      `json:"password"`
	Role                         domain.Role `json:"role"`
	Basificacion                 string      `json:"basificacion"`
	NombreEmbarcacionPropietario string      `json:"nombreEmbarcacionPropietario,omitempty"`
	FolioEmbarcacionPropietario  string      `json:"folioEmbarcacionPropietario,omitempty"`
}

// UserUsecase manages accounts. Every operation here is restricted to the
// Administrador role.
type UserUsecase struct {
	users  UserRepository
	signal SignalPublisher
}

func NewUserUsecase(users UserRepository, signal SignalPublisher) *UserUsecase {
	return &UserUsecase{users: users, signal: signal}
}

func (u *UserUsecase) List(ctx context.Context, actor domain.User) ([]domain.User, error) {
	if actor.Role != domain.RoleAdministrador {
		return nil, domain.ErrForbidden
	}
	return u.users.List(ctx)
}

func (u *UserUsecase) Create(ctx context.Context, in NewUserInput, actor domain.User) (domain.User, error) {
	if actor.Role != domain.RoleAdministrador {
		return domain.User{}, domain.ErrForbidden
	}
	if errs := validateUserInput(in); len(errs) > 0 {
		return domain.User{}, domain.ValidationError{Fields: errs}
	}
	if _, err := u.users.GetByUsername(ctx, in.Username); err == nil {
		return domain.User{}, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, pkgerrors.Wrap(err, "UserUsecase.Create: username check failed")
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, pkgerrors.Wrap(err, "UserUsecase.Create: password hashing failed")
	}

	account := domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Role:         in.Role,
		Basificacion: in.Basificacion,
	}
	if in.Role == domain.RoleOperadorPropietario {
		account.NombreEmbarcacionPropietario = &in.NombreEmbarcacionPropietario
		account.FolioEmbarcacionPropietario = &in.FolioEmbarcacionPropietario
	}

	if err := u.users.Create(ctx, account, hash); err != nil {
		return domain.User{}, pkgerrors.Wrap(err, "UserUsecase.Create: persist failed")
	}
	u.notify(ctx, "INSERT", account.ID)
	return account, nil
}

func (u *UserUsecase) Update(ctx context.Context, account domain.User, actor domain.User) error {
	if actor.Role != domain.RoleAdministrador {
		return domain.ErrForbidden
	}
	if _, err := u.users.GetByID(ctx, account.ID); err != nil {
		return err
	}
	if err := u.users.Update(ctx, account); err != nil {
		return pkgerrors.Wrap(err, "UserUsecase.Update: persist failed")
	}
	u.notify(ctx, "UPDATE", account.ID)
	return nil
}

func (u *UserUsecase) Delete(ctx context.Context, id string, actor domain.User) error {
	if actor.Role != domain.RoleAdministrador {
		return domain.ErrForbidden
	}
	if id == actor.ID {
		return domain.ValidationError{Fields: map[string]string{
			"id": "No puede eliminar su propia cuenta.",
		}}
	}
	if err := u.users.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(err, "UserUsecase.Delete: delete failed")
	}
	u.notify(ctx, "DELETE", id)
	return nil
}

func validateUserInput(in NewUserInput) map[string]string {
	errs := map[string]string{}
	if in.Username == "" {
		errs["username"] = "El correo es obligatorio."
	}
	if in.Password == "" {
		errs["password"] = "La contraseña es obligatoria."
	}
	switch in.Role {
	case domain.RoleAdministrador, domain.RoleOperador, domain.RoleOperadorPropietario, domain.RoleVisualizador:
	default:
		errs["role"] = "Rol inválido."
	}
	if in.Basificacion == "" {
		errs["basificacion"] = "Basificación es obligatoria."
	}
	if in.Role == domain.RoleOperadorPropietario && (in.NombreEmbarcacionPropietario == "" || in.FolioEmbarcacionPropietario == "") {
		errs["folioEmbarcacionPropietario"] = "Debe indicar la embarcación del operador propietario."
	}
	return errs
}

func (u *UserUsecase) notify(ctx context.Context, typ, key string) {
	if err := u.signal.Publish(ctx, domain.Event{Type: typ, Table: domain.TableUsuarios, Key: key}); err != nil {
		slog.ErrorContext(ctx, "failed to publish change event",
			slog.String("table", domain.TableUsuarios),
			slog.String("error", err.Error()),
		)
	}
}
