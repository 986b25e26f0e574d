package store

import "github.com/google/uuid"

// Seed data applied on first-ever initialization, when no persisted snapshot
// exists for the slot. Once a snapshot has been written the seeds are never
// applied again, even if the user deletes every entry.

func defaultServices() []Service {
	return []Service{
		{
			ID:          uuid.New(),
			Name:        "Corte Masculino",
			Description: "Corte tradicional masculino com máquina e tesoura",
			Duration:    30,
			Price:       35,
		},
		{
			ID:          uuid.New(),
			Name:        "Barba",
			Description: "Aparar e modelar barba com navalha",
			Duration:    20,
			Price:       25,
		},
		{
			ID:          uuid.New(),
			Name:        "Corte + Barba",
			Description: "Combo completo de corte e barba",
			Duration:    45,
			Price:       55,
		},
		{
			ID:          uuid.New(),
			Name:        "Corte Infantil",
			Description: "Corte para crianças até 12 anos",
			Duration:    25,
			Price:       25,
		},
	}
}

func defaultBarbers() []Barber {
	return []Barber{
		{
			ID:        uuid.New(),
			Name:      "João Silva",
			Phone:     "(11) 98765-4321",
			Email:     "joao@barbershop.com",
			Specialty: "Cortes Clássicos",
			IsActive:  true,
		},
		{
			ID:        uuid.New(),
			Name:      "Pedro Santos",
			Phone:     "(11) 98765-1234",
			Email:     "pedro@barbershop.com",
			Specialty: "Barba e Bigode",
			IsActive:  true,
		},
	}
}
