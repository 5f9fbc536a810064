package domain

// Role is the access profile assigned to a user account.
type Role string

const (
	RoleAdministrador       Role = "Administrador"
	RoleOperador            Role = "Operador"
	RoleOperadorPropietario Role = "Operador Propietario"
	RoleVisualizador        Role = "Visualizador"
)

// BasificacionTodas is the sentinel zone meaning "every zone".
const BasificacionTodas = "Todas"

// VesselState is the lifecycle state of a departure record.
type VesselState string

const (
	StateDespachada VesselState = "Despachada"
	StateEnPuerto   VesselState = "En puerto"
)

// Propulsion values accepted on a departure record.
const (
	PropulsionRemo  = "remo"
	PropulsionVela  = "vela"
	PropulsionMotor = "motor"
	PropulsionOtros = "otros"
)

// Exit-authorization document types.
const (
	DocumentoCI                = "CI"
	DocumentoCarneMarino       = "Carné de Marino"
	DocumentoPescaProfesional  = "Carné de Pesca Profesional"
	DocumentoPCE               = "PCE"
	DocumentoPermisoNavegacion = "Permiso Especial de Navegación"
	DocumentoPasaporte         = "Pasaporte"
)

// Delivery methods for dispatch messages.
const (
	MetodoSMS      = "SMS"
	MetodoWhatsApp = "WhatsApp"
)

// TimeBand classifies the remaining authorized time of a despatched vessel.
type TimeBand string

const (
	BandUnknown  TimeBand = "unknown"
	BandExpired  TimeBand = "expired"
	BandCritical TimeBand = "critical"
	BandNormal   TimeBand = "normal"
)

// CriticalThresholdSeconds is the boundary between normal and critical.
const CriticalThresholdSeconds = 3600

const (
	RequesterIdCtxKey   = "consimar-requesterId"
	RequesterRoleCtxKey = "consimar-requesterRole"
)

// Tables carrying change notifications over the signal channel.
const (
	TableEmbarcaciones          = "embarcaciones"
	TableEmbarcacionesProhibida = "embarcaciones_prohibidas"
	TablePersonasProhibidas     = "personas_prohibidas"
	TablePersonasObservadas     = "personas_observadas"
	TableUsuarios               = "usuarios"
	TableMensajes               = "mensajes"
)
