package main

import (
	"fmt"
	"log"
	"os"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/storage"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Clinic onboarding CLI. Room creation has no self-service UI path: the
// clinic links a doctor and a patient account here when the patient is
// admitted, and the room then shows up in both portals.
func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	store := storage.NewService(db, nil, zap.NewNop().Sugar()) // no redis or log output needed for the CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: link-room, list-rooms")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "link-room":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin link-room <doctor_id> <patient_user_id>")
			os.Exit(1)
		}
		room, err := linkRoom(store, os.Args[2], os.Args[3])
		if err != nil {
			log.Fatalf("Error linking room: %v", err)
		}
		fmt.Printf("Room %s created between %s and %s.\n", room.RoomID, room.DoctorName, room.PatientName)

	case "list-rooms":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin list-rooms <user_id>")
			os.Exit(1)
		}
		rooms, err := store.GetRoomsForUser(os.Args[2])
		if err != nil {
			log.Fatalf("Error listing rooms: %v", err)
		}
		for _, r := range rooms {
			fmt.Printf("%s  doctor=%s patient=%s unread=%d/%d\n",
				r.RoomID, r.DoctorName, r.PatientName, r.DoctorUnread, r.PatientUnread)
		}

	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func linkRoom(s storage.Storage, doctorID, patientID string) (*models.ChatRoom, error) {
	doctor, err := s.GetUserByID(doctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Role != models.RoleDoctor {
		return nil, fmt.Errorf("%s is not a doctor account", doctorID)
	}
	patient, err := s.GetUserByID(patientID)
	if err != nil {
		return nil, err
	}
	if patient.Role != models.RolePatient {
		return nil, fmt.Errorf("%s is not a patient account", patientID)
	}

	room := &models.ChatRoom{
		DoctorID:    doctor.ID,
		PatientID:   patient.ID,
		DoctorName:  doctor.FullName,
		PatientName: patient.FullName,
	}
	if err := s.SaveRoom(room); err != nil {
		return nil, err
	}
	return room, nil
}
