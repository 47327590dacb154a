package engine

import "github.com/bookline/bookline/internal/model"

// Snapshot is the full picture of one owner's data the engine decides against.
// Callers load a fresh snapshot immediately before every decision and persist
// the result themselves; the engine holds no state between calls and performs
// no I/O.
type Snapshot struct {
	Appointments []model.Appointment
	Staff        []model.StaffMember
	Services     []model.Service
}

func (s Snapshot) ServiceByID(id string) (model.Service, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return model.Service{}, false
}

func (s Snapshot) StaffByID(id string) (model.StaffMember, bool) {
	for _, st := range s.Staff {
		if st.ID == id {
			return st, true
		}
	}
	return model.StaffMember{}, false
}
