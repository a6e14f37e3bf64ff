package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := initGormDB(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			clearTables(db)
		}

		seedUsers(db)
		seedPermissions(db)
		seedEmployees(db)
		seedAssets(db)
		seedAssignments(db)

		fmt.Println("Sample data seeded successfully")
	},
}

func clearTables(db *gorm.DB) {
	// Assignment rows reference employees and assets, so they go first.
	tables := []string{"audit_logs", "assignments", "assets", "employees", "user_permissions", "permissions", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear table %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedUsers(db *gorm.DB) {
	password := "password"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	users := []struct {
		Email string
		Name  string
	}{
		{"admin@company.co.kr", "관리자"},
		{"manager@company.co.kr", "김민재"},
		{"viewer@company.co.kr", "홍길동"},
	}

	for _, u := range users {
		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
			fmt.Printf("user %s already exists; will ensure permissions\n", u.Email)
			continue
		}

		if err := db.Exec("INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", u.Email, u.Name, string(hash)).Error; err != nil {
			log.Fatalf("failed to insert user %s: %v", u.Email, err)
		}
		fmt.Println("Seeded user:", u.Email)
	}
}

func seedPermissions(db *gorm.DB) {
	permissions := []struct {
		Name string
		Desc string
	}{
		{"admin", "full administrator"},
		{"view_assignments", "Can view assignments, assets and employees"},
		{"manage_assignments", "Can create, update, return and delete assignments"},
		{"manage_assets", "Can manage the asset registry"},
		{"manage_employees", "Can manage the employee directory"},
		{"export_data", "Can export assignment data"},
		{"import_data", "Can import assignment data"},
		{"view_audit", "Can read the audit trail"},
	}

	for _, p := range permissions {
		var pid int64
		if err := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row().Scan(&pid); err != nil {
			if err := db.Exec("INSERT INTO permissions (name, description, created_at) VALUES (?, ?, now())", p.Name, p.Desc).Error; err != nil {
				log.Fatalf("failed to insert permission %s: %v", p.Name, err)
			}
		}
	}

	grantPermissions(db, "admin@company.co.kr", []string{"admin"})
	grantPermissions(db, "manager@company.co.kr", []string{
		"view_assignments", "manage_assignments", "manage_assets",
		"manage_employees", "export_data", "import_data",
	})
	grantPermissions(db, "viewer@company.co.kr", []string{"view_assignments"})
}

func grantPermissions(db *gorm.DB, email string, permissionNames []string) {
	var userID int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&userID); err != nil {
		log.Fatalf("failed to lookup user id for %s: %v", email, err)
	}

	for _, permName := range permissionNames {
		var pid int64
		if err := db.Raw("SELECT id FROM permissions WHERE name = ?", permName).Row().Scan(&pid); err != nil {
			log.Fatalf("permission not found %s: %v", permName, err)
		}

		var exists int
		if err := db.Raw("SELECT 1 FROM user_permissions WHERE user_id = ? AND permission_id = ?", userID, pid).Row().Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO user_permissions (user_id, permission_id, granted_by, created_at) VALUES (?, ?, NULL, now())", userID, pid).Error; err != nil {
			log.Fatalf("failed to grant permission %s to %s: %v", permName, email, err)
		}
	}

	fmt.Printf("Granted permissions to %s: %v\n", email, permissionNames)
}

func seedEmployees(db *gorm.DB) {
	employees := []struct {
		ID         string
		Name       string
		Department string
		Position   string
		Email      string
		JoinDate   string
	}{
		{"EMP001", "김철수", "개발팀", "선임 개발자", "kim.cs@company.kr", "2021-03-02"},
		{"EMP002", "이영희", "마케팅팀", "마케터", "lee.yh@company.kr", "2022-07-18"},
		{"EMP003", "박민수", "개발팀", "개발자", "park.ms@company.kr", "2023-01-09"},
		{"EMP004", "정다은", "디자인팀", "디자이너", "jung.de@company.kr", "2022-11-01"},
		{"EMP005", "최지은", "인사팀", "인사 담당자", "choi.je@company.kr", "2020-05-11"},
	}

	for _, e := range employees {
		var exists int
		if err := db.Raw("SELECT 1 FROM employees WHERE id = ?", e.ID).Row().Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO employees (id, name, department, position, email, join_date, is_active, active_assignments, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, 0, now(), now())",
			e.ID, e.Name, e.Department, e.Position, e.Email, e.JoinDate).Error; err != nil {
			log.Fatalf("failed to insert employee %s: %v", e.ID, err)
		}
		fmt.Printf("Seeded employee: %s (%s)\n", e.ID, e.Name)
	}
}

func seedAssets(db *gorm.DB) {
	assets := []struct {
		ID           string
		Name         string
		AssetType    string
		Manufacturer string
		Model        string
		SerialNumber string
		Status       string
		Price        string
	}{
		{"HW001", "Dell XPS 15 노트북", "hardware", "Dell", "XPS 15 9530", "DX15-2024-001", "in_use", "2890000"},
		{"HW002", "LG 그램 17 노트북", "hardware", "LG전자", "17Z90R", "LG17-2023-014", "in_use", "2190000"},
		{"HW003", "MacBook Pro 14", "hardware", "Apple", "A2918", "MBP14-2024-003", "available", "3190000"},
		{"HW004", "LG 울트라와이드 모니터", "hardware", "LG전자", "34WQ75C", "LGM34-2023-021", "available", "790000"},
		{"SW001", "Adobe Creative Cloud 라이선스", "software", "Adobe", "Creative Cloud 2024", "ACC-2024-001", "available", "790000"},
		{"SW002", "MS Office 365 라이선스", "software", "Microsoft", "Office 365 E3", "O365-2024-007", "in_use", "310000"},
	}

	for _, a := range assets {
		var exists int
		if err := db.Raw("SELECT 1 FROM assets WHERE id = ?", a.ID).Row().Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO assets (id, name, asset_type, manufacturer, model, serial_number, status, purchase_price, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, now(), now())",
			a.ID, a.Name, a.AssetType, a.Manufacturer, a.Model, a.SerialNumber, a.Status, a.Price).Error; err != nil {
			log.Fatalf("failed to insert asset %s: %v", a.ID, err)
		}
		fmt.Printf("Seeded asset: %s (%s)\n", a.ID, a.Name)
	}
}

func seedAssignments(db *gorm.DB) {
	assignments := []struct {
		ID           string
		EmployeeID   string
		AssetID      string
		AssetType    string
		AssignedDate string
		ReturnDate   string
		Status       string
		Notes        string
	}{
		{"AS001", "EMP001", "HW001", "hardware", "2024-01-15", "", "in_use", "개발 장비"},
		{"AS002", "EMP002", "SW002", "software", "2024-02-01", "", "in_use", ""},
		{"AS003", "EMP003", "HW002", "hardware", "2023-11-20", "", "overdue", "반납 지연"},
		{"AS004", "EMP005", "SW001", "software", "2024-02-01", "2024-02-20", "returned", ""},
	}

	for _, a := range assignments {
		var exists int
		if err := db.Raw("SELECT 1 FROM assignments WHERE id = ?", a.ID).Row().Scan(&exists); err == nil {
			continue
		}

		var err error
		if a.ReturnDate == "" {
			err = db.Exec("INSERT INTO assignments (id, employee_id, asset_id, asset_type, assigned_date, status, notes, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, now(), now())",
				a.ID, a.EmployeeID, a.AssetID, a.AssetType, a.AssignedDate, a.Status, a.Notes).Error
		} else {
			err = db.Exec("INSERT INTO assignments (id, employee_id, asset_id, asset_type, assigned_date, return_date, status, notes, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, now(), now())",
				a.ID, a.EmployeeID, a.AssetID, a.AssetType, a.AssignedDate, a.ReturnDate, a.Status, a.Notes).Error
		}
		if err != nil {
			log.Fatalf("failed to insert assignment %s: %v", a.ID, err)
		}
		fmt.Printf("Seeded assignment: %s (%s -> %s)\n", a.ID, a.AssetID, a.EmployeeID)
	}

	// Keep the denormalized open-assignment counters in line with the rows above.
	if err := db.Exec("UPDATE employees SET active_assignments = (SELECT COUNT(*) FROM assignments WHERE assignments.employee_id = employees.id AND assignments.return_date IS NULL)").Error; err != nil {
		log.Fatalf("failed to refresh active assignment counters: %v", err)
	}
}
