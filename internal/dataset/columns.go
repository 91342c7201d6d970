package dataset

import "strconv"

// Canonical column names for the deployment sheet. Order matters: it is the
// order columns are materialized in when reconciliation has to add them.
const (
	ColUnit               = "UNIDAD"
	ColOrderType          = "TIPO ORDEN"
	ColOrderNumber        = "NUMERO ORDEN"
	ColOrderName          = "NOMBRE ORDEN"
	ColOperativeName      = "NOMBRE OPERATIVO"
	ColOperativeType      = "TIPO OPERATIVO"
	ColStartTime          = "HORA INICIO"
	ColEndTime            = "HORA FIN"
	ColDeployment         = "DESPLIEGUE"
	ColVehicles           = "MOVILES"
	ColSubOfficers        = "SS.OO"
	ColMotorcycles        = "MOTOS"
	ColMounted            = "HIPO"
	ColPersonnelInVehicle = "PP.SS EN MOVIL"
	ColPersonnelOnFoot    = "PP.SS PIE TIERRA"
	ColShockPosted        = "CHOQUE APOSTADO"
	ColShockAlert         = "CHOQUE ALERTA"
	ColGeoPosted          = "GEO APOSTADO"
	ColGeoAlert           = "GEO ALERTA"
	ColPersonnelTotal     = "PP.SS TOTAL"
	ColSection            = "SECC."
	ColPercentage         = "PORCENTAJE"

	// ColDate is recognized when present (day sheets carry it) but is not
	// part of the canonical set a reconciled sheet must contain.
	ColDate = "FECHA"

	// ColOriginalOrderName preserves the pre-combination order name after
	// the partitioner merges operative type and name into ColOrderName.
	ColOriginalOrderName = "NOMBRE ORDEN ORIGINAL"
)

// CanonicalColumns is the fixed ordered set every reconciled row must carry.
func CanonicalColumns() []string {
	cols := []string{
		ColUnit,
		ColOrderType,
		ColOrderNumber,
		ColOrderName,
		ColOperativeName,
		ColOperativeType,
		ColStartTime,
		ColEndTime,
		ColDeployment,
		ColVehicles,
		ColSubOfficers,
		ColMotorcycles,
		ColMounted,
		ColPersonnelInVehicle,
		ColPersonnelOnFoot,
		ColShockPosted,
		ColShockAlert,
		ColGeoPosted,
		ColGeoAlert,
		ColPersonnelTotal,
		ColSection,
	}
	for i := 1; i <= 10; i++ {
		cols = append(cols, plateColumn(i))
	}
	return append(cols, ColPercentage)
}

func plateColumn(n int) string {
	// MATRICULA 1 .. MATRICULA 10
	return "MATRICULA " + strconv.Itoa(n)
}

// NumericColumns lists the columns coerced to integers during
// reconciliation. The two schedule columns and the percentage column are
// handled separately (see TimeColumns and ColPercentage).
func NumericColumns() []string {
	return []string{
		ColDeployment,
		ColVehicles,
		ColSubOfficers,
		ColMotorcycles,
		ColMounted,
		ColPersonnelInVehicle,
		ColPersonnelOnFoot,
		ColShockPosted,
		ColShockAlert,
		ColGeoPosted,
		ColGeoAlert,
		ColPersonnelTotal,
	}
}

// TimeColumns are exempt from numeric coercion: source sheets embed
// non-numeric schedule annotations that must survive verbatim.
func TimeColumns() []string {
	return []string{ColStartTime, ColEndTime}
}

// MultiValueColumns may hold comma-separated values and are forced to
// cleaned strings during reconciliation.
func MultiValueColumns() []string {
	return []string{ColSection}
}
