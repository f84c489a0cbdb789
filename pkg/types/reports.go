package types

// Dashboard statistics are fetched through one typed call per statistic.
// Each response carries exactly one shape; nothing is inferred from field
// presence.

// PatientStats summarizes the patient directory
type PatientStats struct {
	TotalPatients      int `json:"totalPatients"`
	AdmittedPatients   int `json:"admittedPatients"`
	OutpatientPatients int `json:"outpatientPatients"`
	DischargedPatients int `json:"dischargedPatients"`
}

// DoctorStats summarizes the doctor directory
type DoctorStats struct {
	TotalDoctors  int `json:"totalDoctors"`
	ActiveDoctors int `json:"activeDoctors"`
}

// AppointmentStats summarizes appointment volume
type AppointmentStats struct {
	TotalAppointments   int `json:"totalAppointments"`
	TodaysAppointments  int `json:"todaysAppointments"`
	PendingAppointments int `json:"pendingAppointments"`
}

// BillingStats summarizes revenue
type BillingStats struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	PendingAmount  float64 `json:"pendingAmount"`
}

// InventoryStats summarizes stock levels
type InventoryStats struct {
	TotalItems    int `json:"totalItems"`
	LowStockItems int `json:"lowStockItems"`
}
