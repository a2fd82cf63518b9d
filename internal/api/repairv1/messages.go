package repairv1

import "time"

type Appointment struct {
	Id          string    `json:"id"`
	Address     string    `json:"address"`
	Date        time.Time `json:"date"`
	TimeSlot    string    `json:"timeSlot"`
	Problem     string    `json:"problem"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"statusLabel"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TimeSlot struct {
	Id        string `json:"id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type CreateAppointmentRequest struct {
	Address       string    `json:"address"`
	Date          time.Time `json:"date"`
	TimeSlot      string    `json:"timeSlot"`
	Problem       string    `json:"problem"`
	CustomProblem string    `json:"customProblem,omitempty"`
}

type CreateAppointmentResponse struct {
	Appointment *Appointment `json:"appointment"`
	Durable     bool         `json:"durable"`
}

type UpdateAppointmentStatusRequest struct {
	AppointmentId string `json:"appointmentId"`
	Status        string `json:"status"`
}

type UpdateAppointmentStatusResponse struct {
	Durable bool `json:"durable"`
}

type DeleteAppointmentRequest struct {
	AppointmentId string `json:"appointmentId"`
}

type DeleteAppointmentResponse struct {
	Durable bool `json:"durable"`
}

type ListUpcomingAppointmentsRequest struct{}

type ListPastAppointmentsRequest struct{}

type ListAppointmentsResponse struct {
	Appointments []*Appointment `json:"appointments"`
	Loading      bool           `json:"loading"`
}

type ListTimeSlotsRequest struct {
	Date time.Time `json:"date"`
}

type ListTimeSlotsResponse struct {
	Slots []*TimeSlot `json:"slots"`
}

type ListProblemsRequest struct{}

type ListProblemsResponse struct {
	Problems []string `json:"problems"`
	// Other is the catalog entry that requires a custom description.
	Other string `json:"other"`
}
