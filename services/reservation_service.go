package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"gorm.io/gorm"
)

// Durasi reservasi tetap 2 jam, tidak dapat dikonfigurasi dari request
const ReservationDuration = 2 * time.Hour

// MaxOnlinePartySize adalah batas booking online. Rombongan lebih besar
// harus menghubungi restoran langsung (aturan bisnis, bukan cek kapasitas).
const MaxOnlinePartySize = 10

var ErrReservationNotFound = errors.New("reservation not found")

// ValidationError -> input tidak lengkap/tidak valid, dikembalikan
// sebelum ada query ke database
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CapacityError -> rombongan melebihi kapasitas meja terbesar
type CapacityError struct {
	Message string
}

func (e *CapacityError) Error() string {
	return e.Message
}

// AvailabilityError -> semua meja yang muat sudah terisi di jam tersebut
type AvailabilityError struct {
	Message string
}

func (e *AvailabilityError) Error() string {
	return e.Message
}

// BackendError -> query database gagal. Detail aslinya hanya masuk log
// server, pesan ke user dibuat generik.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return "something went wrong, please try again"
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

type ReservationService struct {
	DB *gorm.DB

	// bookMu menutup celah check-then-act antara pengecekan konflik dan
	// insert reservasi, supaya dua request bersamaan untuk slot yang sama
	// tidak sama-sama lolos pengecekan (double booking).
	bookMu sync.Mutex
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

type CreateReservationInput struct {
	Name            string
	Email           string
	Phone           string
	Date            string // YYYY-MM-DD
	Time            string // "H:MM AM/PM"
	Guests          string // "1".."10" atau "more"
	SpecialRequests string
	Occasion        string
}

// ParseTime12Hour mengubah "H:MM AM/PM" menjadi "HH:MM:00" (24 jam).
// Aturan: 12 PM tetap jam 12, PM lain +12, 12 AM menjadi jam 0,
// AM 1-11 tidak berubah.
func ParseTime12Hour(raw string) (string, error) {
	fields := strings.Fields(strings.ToUpper(strings.TrimSpace(raw)))
	if len(fields) != 2 {
		return "", &ValidationError{Message: fmt.Sprintf("invalid time format: %q", raw)}
	}

	meridiem := fields[1]
	if meridiem != "AM" && meridiem != "PM" {
		return "", &ValidationError{Message: fmt.Sprintf("invalid time format: %q", raw)}
	}

	parts := strings.Split(fields[0], ":")
	if len(parts) != 2 {
		return "", &ValidationError{Message: fmt.Sprintf("invalid time format: %q", raw)}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 1 || hour > 12 {
		return "", &ValidationError{Message: fmt.Sprintf("invalid hour in time: %q", raw)}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", &ValidationError{Message: fmt.Sprintf("invalid minute in time: %q", raw)}
	}

	if meridiem == "PM" && hour != 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}

	return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
}

// reservationEndTime menghitung jam selesai (start + 2 jam).
// Jendela yang melewati tengah malam ditolak, bukan di-roll ke tanggal
// berikutnya; restoran tutup jam 00:00.
func reservationEndTime(start string) (string, error) {
	var hour, minute, second int
	if _, err := fmt.Sscanf(start, "%d:%d:%d", &hour, &minute, &second); err != nil {
		return "", &ValidationError{Message: fmt.Sprintf("invalid start time: %q", start)}
	}

	endHour := hour + int(ReservationDuration.Hours())
	if endHour >= 24 {
		return "", &ValidationError{
			Message: "reservations must end by midnight, please choose an earlier time",
		}
	}

	return fmt.Sprintf("%02d:%02d:00", endHour, minute), nil
}

// FindAvailableTable mencari meja aktif terkecil yang muat untuk rombongan
// dan tidak bentrok dengan reservasi lain pada jendela waktu tersebut.
func (rs *ReservationService) FindAvailableTable(date, startTime, endTime string, partySize int) (*models.Table, error) {
	var candidates []models.Table

	// Meja terkecil yang cukup lebih dulu, supaya kursi tidak terbuang
	if err := rs.DB.
		Where("is_active = ? AND capacity >= ?", true, partySize).
		Order("capacity ASC").
		Find(&candidates).Error; err != nil {
		utils.ErrorLogger.Printf("Error querying candidate tables: %v", err)
		return nil, &BackendError{Err: err}
	}

	if len(candidates) == 0 {
		var largest models.Table
		err := rs.DB.
			Where("is_active = ?", true).
			Order("capacity DESC").
			First(&largest).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &AvailabilityError{Message: "no suitable table available"}
			}
			utils.ErrorLogger.Printf("Error querying largest table: %v", err)
			return nil, &BackendError{Err: err}
		}

		if partySize > largest.Capacity {
			return nil, &CapacityError{
				Message: fmt.Sprintf(
					"our largest table seats %d guests, please call us directly for larger parties",
					largest.Capacity),
			}
		}
		// Kapasitas seharusnya cukup tapi query pertama kosong; state tidak konsisten
		return nil, &AvailabilityError{Message: "no suitable table available"}
	}

	for _, table := range candidates {
		// Konflik: reservasi non-cancelled di meja & tanggal yang sama dengan
		// jendela waktu yang beririsan (tes irisan inklusif)
		var conflicts int64
		err := rs.DB.Model(&models.Reservation{}).
			Where("table_id = ? AND reservation_date = ? AND status <> ?",
				table.ID, date, models.ReservationCancelled).
			Where("start_time <= ? AND end_time >= ?", endTime, startTime).
			Count(&conflicts).Error
		if err != nil {
			utils.ErrorLogger.Printf("Error checking conflicts for table %d: %v", table.ID, err)
			return nil, &BackendError{Err: err}
		}

		if conflicts == 0 {
			// First-fit: langsung ambil meja pertama yang bebas
			return &table, nil
		}
	}

	return nil, &AvailabilityError{Message: "no tables available for the requested time"}
}

// CreateReservation memvalidasi input, mencari meja, me-resolve profil
// tamu, lalu menyimpan reservasi berstatus pending.
func (rs *ReservationService) CreateReservation(input CreateReservationInput) (*models.Reservation, error) {
	var missing []string
	for field, value := range map[string]string{
		"name":   input.Name,
		"email":  input.Email,
		"phone":  input.Phone,
		"date":   input.Date,
		"time":   input.Time,
		"guests": input.Guests,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &ValidationError{
			Message: "missing required fields: " + strings.Join(missing, ", "),
		}
	}

	// Ditolak sebelum query meja apapun (aturan bisnis)
	if input.Guests == "more" {
		return nil, &CapacityError{
			Message: fmt.Sprintf(
				"for parties larger than %d, please call us directly to arrange your reservation",
				MaxOnlinePartySize),
		}
	}

	partySize, err := strconv.Atoi(input.Guests)
	if err != nil || partySize < 1 {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid party size: %q", input.Guests)}
	}
	if partySize > MaxOnlinePartySize {
		return nil, &CapacityError{
			Message: fmt.Sprintf(
				"for parties larger than %d, please call us directly to arrange your reservation",
				MaxOnlinePartySize),
		}
	}

	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid date: %q", input.Date)}
	}

	startTime, err := ParseTime12Hour(input.Time)
	if err != nil {
		return nil, err
	}
	endTime, err := reservationEndTime(startTime)
	if err != nil {
		return nil, err
	}

	// Pengecekan konflik dan insert diserialisasi supaya tidak ada dua
	// request yang sama-sama lolos untuk slot yang sama
	rs.bookMu.Lock()
	defer rs.bookMu.Unlock()

	table, err := rs.FindAvailableTable(input.Date, startTime, endTime, partySize)
	if err != nil {
		return nil, err
	}

	var reservation models.Reservation
	err = rs.DB.Transaction(func(tx *gorm.DB) error {
		profile, err := rs.findOrCreateGuestProfile(tx, input)
		if err != nil {
			return err
		}

		reservation = models.Reservation{
			Code:            uuid.NewString(),
			CustomerID:      profile.ID,
			TableID:         table.ID,
			ReservationDate: input.Date,
			StartTime:       startTime,
			EndTime:         endTime,
			PartySize:       partySize,
			Status:          models.ReservationPending,
		}
		if strings.TrimSpace(input.SpecialRequests) != "" {
			requests := input.SpecialRequests
			reservation.SpecialRequests = &requests
		}

		return tx.Create(&reservation).Error
	})
	if err != nil {
		utils.ErrorLogger.Printf("Error creating reservation (table=%d date=%s): %v",
			table.ID, input.Date, err)
		return nil, &BackendError{Err: err}
	}

	// Muat ulang dengan data customer + meja untuk ditampilkan
	if err := rs.DB.Preload("Customer").Preload("Table").
		First(&reservation, reservation.ID).Error; err != nil {
		utils.ErrorLogger.Printf("Error reloading reservation %d: %v", reservation.ID, err)
		return nil, &BackendError{Err: err}
	}

	utils.InfoLogger.Printf("Reservation %s created: table=%s date=%s %s-%s party=%d",
		reservation.Code, reservation.Table.TableNumber, reservation.ReservationDate,
		reservation.StartTime, reservation.EndTime, reservation.PartySize)

	return &reservation, nil
}

// findOrCreateGuestProfile mencari profil guest berdasarkan nomor telepon.
// Kalau sudah ada, profil lama dipakai apa adanya (atribut existing tidak
// ditimpa meski nama/email di request berbeda). Kalau belum ada, dibuat baru.
func (rs *ReservationService) findOrCreateGuestProfile(tx *gorm.DB, input CreateReservationInput) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := tx.Where("phone = ? AND is_guest = ?", input.Phone, true).
		First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	firstName, lastName := splitName(input.Name)
	profile = models.CustomerProfile{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     input.Phone,
		Email:     input.Email,
		IsGuest:   true,
	}
	if strings.TrimSpace(input.Occasion) != "" {
		prefs := "Occasion: " + input.Occasion
		profile.Preferences = &prefs
	}

	if err := tx.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// splitName memecah nama menjadi first name (token pertama) dan last name
// (sisa token digabung spasi, string kosong jika tidak ada)
func splitName(name string) (string, string) {
	tokens := strings.Fields(strings.TrimSpace(name))
	if len(tokens) == 0 {
		return "", ""
	}
	return tokens[0], strings.Join(tokens[1:], " ")
}

// UpdateStatus memindahkan status reservasi mengikuti tabel transisi:
// pending -> confirmed/cancelled, confirmed -> cancelled/completed.
// Perpindahan di luar tabel ditolak.
func (rs *ReservationService) UpdateStatus(reservationID uint, newStatus string) (*models.Reservation, error) {
	if !models.ValidReservationStatus(newStatus) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown status: %q", newStatus)}
	}

	var reservation models.Reservation
	if err := rs.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		utils.ErrorLogger.Printf("Error loading reservation %d: %v", reservationID, err)
		return nil, &BackendError{Err: err}
	}

	if !models.CanTransition(reservation.Status, newStatus) {
		return nil, &ValidationError{
			Message: fmt.Sprintf("cannot change reservation status from %s to %s",
				reservation.Status, newStatus),
		}
	}

	reservation.Status = newStatus
	if err := rs.DB.Save(&reservation).Error; err != nil {
		utils.ErrorLogger.Printf("Error updating reservation %d status: %v", reservationID, err)
		return nil, &BackendError{Err: err}
	}

	if err := rs.DB.Preload("Customer").Preload("Table").
		First(&reservation, reservation.ID).Error; err != nil {
		utils.ErrorLogger.Printf("Error reloading reservation %d: %v", reservation.ID, err)
		return nil, &BackendError{Err: err}
	}

	utils.InfoLogger.Printf("Reservation %s status changed to %s", reservation.Code, newStatus)
	return &reservation, nil
}

// GetByCode mengambil reservasi untuk halaman konfirmasi publik
func (rs *ReservationService) GetByCode(code string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := rs.DB.Preload("Customer").Preload("Table").
		Where("code = ?", code).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		utils.ErrorLogger.Printf("Error loading reservation by code %s: %v", code, err)
		return nil, &BackendError{Err: err}
	}
	return &reservation, nil
}
