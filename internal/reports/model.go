package reports

import "time"

// AdminStats is the /admin/estadisticas payload for one negocio.
type AdminStats struct {
	TotalClientes   int64   `json:"totalClientes"`
	CitasHoy        int64   `json:"citasHoy"`
	CitasPendientes int64   `json:"citasPendientes"`
	TotalRecetas    int64   `json:"totalRecetas"`
	IngresosMes     float64 `json:"ingresosMes"`
	PagosPendientes int64   `json:"pagosPendientes"`
}

// PlatformStats is the global rollup for a tenant-less superadmin.
type PlatformStats struct {
	TotalNegocios       int64            `json:"totalNegocios"`
	NegociosActivos     int64            `json:"negociosActivos"`
	NegociosSuspendidos int64            `json:"negociosSuspendidos"`
	TotalUsuarios       int64            `json:"totalUsuarios"`
	TotalClientes       int64            `json:"totalClientes"`
	TotalCitas          int64            `json:"totalCitas"`
	PagosPorEstado      map[string]int64 `json:"pagosPorEstado"`
	IngresosPlataforma  float64          `json:"ingresosPlataforma"`
}

// Dashboard is the /negocio/dashboard payload.
type Dashboard struct {
	ProximasCitas        []CitaResumen `json:"proximasCitas"`
	ClientesNuevosMes    int64         `json:"clientesNuevosMes"`
	IngresosMes          float64       `json:"ingresosMes"`
	NotificacionesNuevas int64         `json:"notificacionesNuevas"`
}

type CitaResumen struct {
	ID            uint      `json:"id"`
	Fecha         time.Time `json:"fecha"`
	Hora          string    `json:"hora"`
	Estado        string    `json:"estado"`
	Motivo        string    `json:"motivo"`
	ClienteNombre string    `json:"clienteNombre"`
}

// MonthlyReport summarizes one month of a negocio's activity.
type MonthlyReport struct {
	Anio             int              `json:"anio"`
	Mes              int              `json:"mes"`
	CitasPorEstado   map[string]int64 `json:"citasPorEstado"`
	ClientesNuevos   int64            `json:"clientesNuevos"`
	IngresosTotal    float64          `json:"ingresosTotal"`
	PagosRegistrados int64            `json:"pagosRegistrados"`
}

// ActivityItem is one row of the superadmin recent-activity feed.
type ActivityItem struct {
	Tipo      string    `json:"tipo"`
	Detalle   string    `json:"detalle"`
	NegocioID uint      `json:"negocioId"`
	Fecha     time.Time `json:"fecha"`
}
