package reports

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	AdminStats(tenantID uint, now time.Time) (*AdminStats, error)
	PlatformStats() (*PlatformStats, error)
	Dashboard(tenantID uint, now time.Time) (*Dashboard, error)
	MonthlyReport(tenantID uint, anio, mes int) (*MonthlyReport, error)
	RecentActivity(limit int) ([]ActivityItem, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func monthBounds(anio, mes int) (time.Time, time.Time) {
	start := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (r *repository) AdminStats(tenantID uint, now time.Time) (*AdminStats, error) {
	stats := &AdminStats{}

	if err := r.db.Table("clientes").Where("tenant_id = ?", tenantID).Count(&stats.TotalClientes).Error; err != nil {
		return nil, err
	}

	hoy := now.Truncate(24 * time.Hour)
	if err := r.db.Table("citas").
		Where("tenant_id = ? AND fecha >= ? AND fecha < ?", tenantID, hoy, hoy.Add(24*time.Hour)).
		Count(&stats.CitasHoy).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("citas").
		Where("tenant_id = ? AND estado = 'PENDIENTE'", tenantID).
		Count(&stats.CitasPendientes).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("recetas").Where("tenant_id = ?", tenantID).Count(&stats.TotalRecetas).Error; err != nil {
		return nil, err
	}

	mesInicio, mesFin := monthBounds(now.Year(), int(now.Month()))
	if err := r.db.Table("pagos_cliente").
		Select("COALESCE(SUM(monto), 0)").
		Where("tenant_id = ? AND estado = 'PAGADO' AND fecha_pago >= ? AND fecha_pago < ?", tenantID, mesInicio, mesFin).
		Scan(&stats.IngresosMes).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("pagos_cliente").
		Where("tenant_id = ? AND estado = 'PENDIENTE'", tenantID).
		Count(&stats.PagosPendientes).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *repository) PlatformStats() (*PlatformStats, error) {
	stats := &PlatformStats{PagosPorEstado: map[string]int64{}}

	if err := r.db.Table("negocios").Count(&stats.TotalNegocios).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("negocios").Where("activo = true AND suspendido = false").Count(&stats.NegociosActivos).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("negocios").Where("suspendido = true").Count(&stats.NegociosSuspendidos).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("usuarios").Count(&stats.TotalUsuarios).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("clientes").Count(&stats.TotalClientes).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("citas").Count(&stats.TotalCitas).Error; err != nil {
		return nil, err
	}

	type estadoRow struct {
		Estado string
		Total  int64
	}
	var rows []estadoRow
	if err := r.db.Table("pagos_sistema").
		Select("estado, COUNT(*) as total").
		Group("estado").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.PagosPorEstado[row.Estado] = row.Total
	}

	if err := r.db.Table("pagos_sistema").
		Select("COALESCE(SUM(monto), 0)").
		Where("estado = 'PAGADO'").
		Scan(&stats.IngresosPlataforma).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *repository) Dashboard(tenantID uint, now time.Time) (*Dashboard, error) {
	d := &Dashboard{}

	err := r.db.Table("citas").
		Select("citas.id, citas.fecha, citas.hora, citas.estado, citas.motivo, clientes.nombre || ' ' || clientes.apellido AS cliente_nombre").
		Joins("JOIN clientes ON clientes.id = citas.cliente_id AND clientes.tenant_id = citas.tenant_id").
		Where("citas.tenant_id = ? AND citas.fecha >= ? AND citas.estado IN ('PENDIENTE', 'CONFIRMADA')", tenantID, now.Truncate(24*time.Hour)).
		Order("citas.fecha ASC, citas.hora ASC").
		Limit(10).
		Scan(&d.ProximasCitas).Error
	if err != nil {
		return nil, err
	}

	mesInicio, mesFin := monthBounds(now.Year(), int(now.Month()))
	if err := r.db.Table("clientes").
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, mesInicio, mesFin).
		Count(&d.ClientesNuevosMes).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("pagos_cliente").
		Select("COALESCE(SUM(monto), 0)").
		Where("tenant_id = ? AND estado = 'PAGADO' AND fecha_pago >= ? AND fecha_pago < ?", tenantID, mesInicio, mesFin).
		Scan(&d.IngresosMes).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("notificaciones").
		Where("tenant_id = ? AND leida = false", tenantID).
		Count(&d.NotificacionesNuevas).Error; err != nil {
		return nil, err
	}

	return d, nil
}

func (r *repository) MonthlyReport(tenantID uint, anio, mes int) (*MonthlyReport, error) {
	inicio, fin := monthBounds(anio, mes)
	report := &MonthlyReport{Anio: anio, Mes: mes, CitasPorEstado: map[string]int64{}}

	type estadoRow struct {
		Estado string
		Total  int64
	}
	var rows []estadoRow
	err := r.db.Table("citas").
		Select("estado, COUNT(*) as total").
		Where("tenant_id = ? AND fecha >= ? AND fecha < ?", tenantID, inicio, fin).
		Group("estado").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		report.CitasPorEstado[row.Estado] = row.Total
	}

	if err := r.db.Table("clientes").
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, inicio, fin).
		Count(&report.ClientesNuevos).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("pagos_cliente").
		Select("COALESCE(SUM(monto), 0)").
		Where("tenant_id = ? AND estado = 'PAGADO' AND fecha_pago >= ? AND fecha_pago < ?", tenantID, inicio, fin).
		Scan(&report.IngresosTotal).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("pagos_cliente").
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, inicio, fin).
		Count(&report.PagosRegistrados).Error; err != nil {
		return nil, err
	}

	return report, nil
}

// RecentActivity interleaves the newest citas, pagos and usuarios
// across all negocios for the superadmin feed.
func (r *repository) RecentActivity(limit int) ([]ActivityItem, error) {
	var items []ActivityItem
	err := r.db.Raw(`
		SELECT * FROM (
			SELECT 'CITA' AS tipo, motivo AS detalle, tenant_id AS negocio_id, created_at AS fecha FROM citas
			UNION ALL
			SELECT 'PAGO_SISTEMA' AS tipo, estado AS detalle, tenant_id AS negocio_id, created_at AS fecha FROM pagos_sistema
			UNION ALL
			SELECT 'USUARIO' AS tipo, email AS detalle, COALESCE(tenant_id, 0) AS negocio_id, created_at AS fecha FROM usuarios
		) actividad
		ORDER BY fecha DESC
		LIMIT ?
	`, limit).Scan(&items).Error
	return items, err
}
