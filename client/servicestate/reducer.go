// Package servicestate holds the client's copy of the services catalog.
package servicestate

import "detailing/models"

// ActionType names a state transition.
type ActionType string

const (
	ActionSet    ActionType = "SET_SERVICES"
	ActionCreate ActionType = "CREATE_SERVICE"
	ActionDelete ActionType = "DELETE_SERVICE"
)

// Action is one state transition. Set uses Services, Create uses Service and
// Delete uses ID.
type Action struct {
	Type     ActionType
	Services []models.Service
	Service  models.Service
	ID       string
}

// Set replaces the list wholesale.
func Set(services []models.Service) Action { return Action{Type: ActionSet, Services: services} }

// Create prepends svc.
func Create(svc models.Service) Action { return Action{Type: ActionCreate, Service: svc} }

// Delete removes the service with id.
func Delete(id string) Action { return Action{Type: ActionDelete, ID: id} }

// State is the services list. Loaded is false until the first Set.
type State struct {
	Services []models.Service
	Loaded   bool
}

// Reduce returns the state after applying a. It never modifies s.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionSet:
		return State{Services: append([]models.Service{}, a.Services...), Loaded: true}
	case ActionCreate:
		out := make([]models.Service, 0, len(s.Services)+1)
		out = append(out, a.Service)
		out = append(out, s.Services...)
		return State{Services: out, Loaded: s.Loaded}
	case ActionDelete:
		out := make([]models.Service, 0, len(s.Services))
		for _, svc := range s.Services {
			if svc.ID != a.ID {
				out = append(out, svc)
			}
		}
		return State{Services: out, Loaded: s.Loaded}
	default:
		return s
	}
}
