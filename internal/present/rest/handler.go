package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/capitania/consimar/internal/domain"
	"github.com/capitania/consimar/internal/present/rest/middleware"
	"github.com/capitania/consimar/internal/present/rest/presenter"
	"github.com/capitania/consimar/internal/service"
	"github.com/capitania/consimar/internal/usecase"
)

// RealtimeSource pumps table-change events for a client-selected set of
// tables into output until ctx is cancelled. Implementations must exit on
// cancellation only; the handler never closes the channels.
type RealtimeSource interface {
	Realtime(ctx context.Context, input chan []string, output chan domain.Event)
}

type Handler struct {
	dispatch  *usecase.DispatchUsecase
	watchlist *usecase.WatchlistUsecase
	users     *usecase.UserUsecase
	messages  *usecase.MessageUsecase
	auth      *service.AuthService
	signal    RealtimeSource
}

func NewHandler(
	dispatch *usecase.DispatchUsecase,
	watchlist *usecase.WatchlistUsecase,
	users *usecase.UserUsecase,
	messages *usecase.MessageUsecase,
	auth *service.AuthService,
	signal RealtimeSource,
) *Handler {
	return &Handler{
		dispatch:  dispatch,
		watchlist: watchlist,
		users:     users,
		messages:  messages,
		auth:      auth,
		signal:    signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.AuthMiddleware) {
	e.POST("/api/v1/login", h.handleLogin)
	e.GET("/realtime", h.handleRealtime)

	api := e.Group("/api/v1", auth.IdentifyIdentity, auth.RequireIdentity)
	api.POST("/logout", h.handleLogout)

	api.GET("/embarcaciones", h.handleListVessels)
	api.POST("/embarcaciones", h.handleRegisterDeparture)
	api.GET("/embarcaciones/despachadas", h.handleListDespachadas)
	api.POST("/embarcaciones/:folio/entrada", h.handleRegisterArrival)
	api.GET("/export/embarcaciones", h.handleExport)

	api.GET("/prohibiciones/embarcaciones", h.handleListProhibitedVessels)
	api.POST("/prohibiciones/embarcaciones", h.handleAddProhibitedVessel)
	api.PUT("/prohibiciones/embarcaciones/:id", h.handleUpdateProhibitedVessel)
	api.DELETE("/prohibiciones/embarcaciones/:id", h.handleRemoveProhibitedVessel)

	api.GET("/prohibiciones/personas", h.handleListProhibitedPersons)
	api.POST("/prohibiciones/personas", h.handleAddProhibitedPerson)
	api.PUT("/prohibiciones/personas/:id", h.handleUpdateProhibitedPerson)
	api.DELETE("/prohibiciones/personas/:id", h.handleRemoveProhibitedPerson)

	api.GET("/personas-observadas", h.handleListObservedPersons)
	api.POST("/personas-observadas", h.handleAddObservedPerson)
	api.PUT("/personas-observadas/:id", h.handleUpdateObservedPerson)
	api.DELETE("/personas-observadas/:id", h.handleRemoveObservedPerson)

	api.GET("/usuarios", h.handleListUsers)
	api.POST("/usuarios", h.handleCreateUser)
	api.PUT("/usuarios/:id", h.handleUpdateUser)
	api.DELETE("/usuarios/:id", h.handleDeleteUser)

	api.GET("/mensajes", h.handleListMessages)
	api.POST("/mensajes", h.handleSendMessage)
}

func requester(c echo.Context) domain.User {
	user, _ := c.Get(middleware.RequesterKey).(domain.User)
	return user
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	token, user, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.OK(c, loginResponse{Token: token, User: user})
}

func (h *Handler) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()

	if token := bearerToken(c); token != "" {
		h.auth.Logout(ctx, token)
	}
	return c.NoContent(http.StatusNoContent)
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return ""
	}
	return header[len(prefix):]
}

func (h *Handler) handleListVessels(c echo.Context) error {
	ctx := c.Request().Context()

	vessels, err := h.dispatch.ListVessels(ctx, requester(c))
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.OK(c, vessels)
}

func (h *Handler) handleRegisterDeparture(c echo.Context) error {
	ctx := c.Request().Context()

	var draft domain.DispatchDraft
	if err := c.Bind(&draft); err != nil {
		return presenter.BadRequest(c, err)
	}

	created, err := h.dispatch.RegisterDeparture(ctx, draft, requester(c))
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.Created(c, created)
}

// despachadaView is one row of the active-dispatch board: the record plus
// its live countdown and the observed persons aboard.
type despachadaView struct {
	domain.Vessel
	TiempoRestante *int64          `json:"tiempoRestante"`
	Banda          domain.TimeBand `json:"banda"`
	Observados     []string        `json:"observados,omitempty"`
}

func (h *Handler) handleListDespachadas(c echo.Context) error {
	ctx := c.Request().Context()

	vessels, err := h.dispatch.ListDespachadas(ctx, requester(c), c.QueryParam("buscar"))
	if err != nil {
		return presenter.HandleError(c, err)
	}

	observed, err := h.watchlist.ObservedSet(ctx)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	tracker := h.dispatch.Countdown()
	views := make([]despachadaView, 0, len(vessels))
	for _, v := range vessels {
		view := despachadaView{
			Vessel:     v,
			Banda:      tracker.Band(v.Folio),
			Observados: observedAboard(v, observed),
		}
		if left, ok := tracker.Remaining(v.Folio); ok {
			view.TiempoRestante = &left
		}
		views = append(views, view)
	}
	return presenter.OK(c, views)
}

func observedAboard(v domain.Vessel, observed map[string]bool) []string {
	var cis []string
	seen := map[string]bool{}
	personas := append([]domain.Persona{v.Propietario, v.Patron}, v.Tripulantes...)
	personas = append(personas, v.Pasajeros...)
	for _, p := range personas {
		if p.CI != "" && observed[p.CI] && !seen[p.CI] {
			cis = append(cis, p.CI)
			seen[p.CI] = true
		}
	}
	return cis
}

func (h *Handler) handleRegisterArrival(c echo.Context) error {
	ctx := c.Request().Context()

	var arr domain.Arrival
	if err := c.Bind(&arr); err != nil {
		return presenter.BadRequest(c, err)
	}
	arr.Folio = c.Param("folio")

	updated, err := h.dispatch.RegisterArrival(ctx, arr, requester(c))
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handleListProhibitedVessels(c echo.Context) error {
	ctx := c.Request().Context()

	list, err := h.watchlist.ListProhibitedVessels(ctx)
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.OK(c, list)
}

func (h *Handler) handleAddProhibitedVessel(c echo.Context) error {
	ctx := c.Request().Context()

	var p domain.ProhibitedVessel
	if err := c.Bind(&p); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.watchlist.AddProhibitedVessel(ctx, p, requester(c))
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.Created(c, created)
}

func (h *Handler) handleUpdateProhibitedVessel(c echo.Context) error {
	ctx := c.Request().Context()

	var p domain.ProhibitedVessel
	if err := c.Bind(&p); err != nil {
		return presenter.BadRequest(c, err)
	}
	p.ID = c.Param("id")
	if err := h.watchlist.UpdateProhibitedVessel(ctx, p, requester(c)); err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.OK(c, p)
}

func (h *Handler) handleRemoveProhibitedVessel(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.watchlist.RemoveProhibitedVessel(ctx, c.Param("id"), requester(c)); err != nil {
		return presenter.HandleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) handleListProhibitedPersons(c echo.Context) error {
	ctx := c.Request().Context()

	list, err := h.watchlist.ListProhibitedPersons(ctx)
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.OK(c, list)
}

func (h *Handler) handleAddProhibitedPerson(c echo.Context) error {
	ctx := c.Request().Context()

	var p domain.ProhibitedPerson
	if err := c.Bind(&p); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.watchlist.AddProhibitedPerson(ctx, p, requester(c))
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.Created(c, created)
}

func (h *Handler) handleUpdateProhibitedPerson(c echo.Context) error {
	ctx := c.Request().Context()

	var p domain.ProhibitedPerson
	if err := c.Bind(&p); err != nil {
		return presenter.BadRequest(c, err)
	}
	p.ID = c.Param("id")
	if err := h.watchlist.UpdateProhibitedPerson(ctx, p, requester(c)); err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.OK(c, p)
}

func (h *Handler) handleRemoveProhibitedPerson(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.watchlist.RemoveProhibitedPerson(ctx, c.Param("id"), requester(c)); err != nil {
		return presenter.HandleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) handleListObservedPersons(c echo.Context) error {
	ctx := c.Request().Context()

	list, err := h.watchlist.ListObservedPersons(ctx)
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.OK(c, list)
}

func (h *Handler) handleAddObservedPerson(c echo.Context) error {
	ctx := c.Request().Context()

	var p domain.ObservedPerson
	if err := c.Bind(&p); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.watchlist.AddObservedPerson(ctx, p, requester(c))
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.Created(c, created)
}

func (h *Handler) handleUpdateObservedPerson(c echo.Context) error {
	ctx := c.Request().Context()

	var p domain.ObservedPerson
	if err := c.Bind(&p); err != nil {
		return presenter.BadRequest(c, err)
	}
	p.ID = c.Param("id")
	if err := h.watchlist.UpdateObservedPerson(ctx, p, requester(c)); err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.OK(c, p)
}

func (h *Handler) handleRemoveObservedPerson(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.watchlist.RemoveObservedPerson(ctx, c.Param("id"), requester(c)); err != nil {
		return presenter.HandleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) handleListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	list, err := h.users.List(ctx, requester(c))
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.OK(c, list)
}

func (h *Handler) handleCreateUser(c echo.Context) error {
	ctx := c.Request().Context()

	var in usecase.NewUserInput
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.users.Create(ctx, in, requester(c))
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.Created(c, created)
}

func (h *Handler) handleUpdateUser(c echo.Context) error {
	ctx := c.Request().Context()

	var account domain.User
	if err := c.Bind(&account); err != nil {
		return presenter.BadRequest(c, err)
	}
	account.ID = c.Param("id")
	if err := h.users.Update(ctx, account, requester(c)); err != nil {
		return presenter.HandleError(c, err)
	}
	h.auth.InvalidateProfile(account.ID)
	return presenter.OK(c, account)
}

func (h *Handler) handleDeleteUser(c echo.Context) error {
	ctx := c.Request().Context()

	id := c.Param("id")
	if err := h.users.Delete(ctx, id, requester(c)); err != nil {
		return presenter.HandleError(c, err)
	}
	h.auth.InvalidateProfile(id)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) handleListMessages(c echo.Context) error {
	ctx := c.Request().Context()

	list, err := h.messages.History(ctx)
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.OK(c, list)
}

func (h *Handler) handleSendMessage(c echo.Context) error {
	ctx := c.Request().Context()

	var in usecase.SendMessageInput
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}
	sent, err := h.messages.Send(ctx, in, requester(c))
	if err != nil {
		return presenter.HandleError(c, err)
	}
	return presenter.Created(c, sent)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Request struct {
	Type   string   `json:"type"`
	Tables []string `json:"tables"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	// The pump exits on cancellation, never on channel closure: a change
	// event arriving during teardown must not hit a closed channel.
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	input := make(chan []string)
	output := make(chan domain.Event)

	go h.signal.Realtime(ctx, input, output)

	// Buffered: the write loop may already have returned when the reader
	// reports the close.
	quit := make(chan struct{}, 1)

	go func() {
		for {
			var req Request
			err := ws.ReadJSON(&req)
			if err != nil {

				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				break
			}

			switch req.Type {
			case "listen":
				select {
				case input <- req.Tables:
				case <-ctx.Done():
					return
				}
				slog.DebugContext(
					ctx, fmt.Sprintf("Socket subscribe: %s", req.Tables),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
