// Package seed holds the storefront's initial catalog, service list and tickets.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"techplug_back_end/internal/models"
)

func zar(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func specs(cpu, ram, storage string) *models.ProductSpecs {
	return &models.ProductSpecs{CPU: cpu, RAM: ram, Storage: storage}
}

func Products() []models.Product {
	return []models.Product{
		{
			ID: "p1", Name: "Kingston 8GB DDR4 2666MHz", Category: "Memory",
			Type: models.TypeComponent, Brand: models.BrandKingston, Condition: models.ConditionNew,
			Price: zar(450), Stock: 12, Image: "https://picsum.photos/200/200?random=1",
			Description: "High performance Kingston 8GB DDR4 2666MHz SODIMM memory for laptops. Ideal for boosting multitasking capabilities.",
			Specs:       specs("N/A", "8GB DDR4", "N/A"),
		},
		{
			ID: "p2", Name: "Samsung 870 EVO 500GB SSD", Category: "Storage",
			Type: models.TypeComponent, Brand: models.BrandSamsung, Condition: models.ConditionNew,
			Price: zar(650), Stock: 8, Image: "https://picsum.photos/200/200?random=2",
			Description: "Samsung 870 EVO SATA III SSD. Fast read/write speeds for improved performance. 5-year warranty.",
			Specs:       specs("N/A", "N/A", "500GB SSD"),
		},
		{
			ID: "p3", Name: "Dell Latitude 5490 (Refurb)", Category: "Laptops",
			Type: models.TypeLaptop, Brand: models.BrandDell, Condition: models.ConditionRefurbished,
			Price: zar(4500), Stock: 3, Image: "https://picsum.photos/200/200?random=10",
			Description: "Reliable business laptop. Fully tested and cleaned. Comes with Windows 10 Pro.",
			Specs:       specs("i5 8th Gen", "8GB", "256GB SSD"),
		},
		{
			ID: "p4", Name: "Logitech MK270 Combo", Category: "Accessories",
			Type: models.TypeAccessory, Brand: models.BrandOther, Condition: models.ConditionNew,
			Price: zar(350), Stock: 15, Image: "https://picsum.photos/200/200?random=4",
			Description: "Logitech MK270 Wireless Combo. Reliable 2.4GHz connection. Long battery life.",
			Specs:       specs("N/A", "N/A", "N/A"),
		},
		{
			ID: "p5", Name: "HP EliteBook 840 G5", Category: "Laptops",
			Type: models.TypeLaptop, Brand: models.BrandHP, Condition: models.ConditionRefurbished,
			Price: zar(5200), Stock: 2, Image: "https://picsum.photos/200/200?random=11",
			Description: "Slim aluminium design, excellent for students and professionals. Bang & Olufsen audio.",
			Specs:       specs("i5 8350U", "16GB", "512GB NVMe"),
		},
		{
			ID: "p6", Name: "Lenovo ThinkPad T480", Category: "Laptops",
			Type: models.TypeLaptop, Brand: models.BrandLenovo, Condition: models.ConditionRefurbished,
			Price: zar(4800), Stock: 4, Image: "https://picsum.photos/200/200?random=12",
			Description: "The workhorse of laptops. Dual battery system for all-day power.",
			Specs:       specs("i5 8th Gen", "8GB", "256GB SSD"),
		},
		{
			ID: "p7", Name: "Office 2021 Professional", Category: "Software",
			Type: models.TypeSoftware, Brand: models.BrandOther, Condition: models.ConditionNew,
			Price: zar(150), Stock: 99, Image: "https://picsum.photos/200/200?random=6",
			Description: "Digital license key for Microsoft Office Professional Plus 2021. Word, Excel, PowerPoint.",
			Specs:       specs("N/A", "N/A", "N/A"),
		},
	}
}

func item(id, name string, price int64, description string) models.ServiceItem {
	return models.ServiceItem{ID: id, Name: name, Price: zar(price), Description: description}
}

func ServiceCategories() []models.ServiceCategory {
	return []models.ServiceCategory{
		{
			ID:          "cat_software",
			ServiceType: "Software Services",
			Description: "Installations, troubleshooting, and system optimizations.",
			Services: []models.ServiceItem{
				item("sw_win_inst", "Windows Installation", 200, "Any version (10/11)."),
				item("sw_win_reinst", "Windows Reinstallation", 350, "Includes data backup."),
				item("sw_win_act", "Windows Activation", 80, "License activation service."),
				item("sw_office", "Microsoft Office Install", 100, "Word, Excel, PowerPoint, Outlook."),
				item("sw_other", "Other Software Install", 100, "Antivirus, design tools, etc. (From R100)"),
				item("sw_bsod", "Blue/Black Screen Fix", 200, "Error troubleshooting."),
				item("sw_file_rec", "File Recovery", 250, "Deleted files, formatted drives. (From R250)"),
				item("sw_virus", "Virus & Malware Removal", 200, "Clean up infected systems."),
				item("sw_drivers", "Driver Install & Updates", 150, "System driver configuration."),
				item("sw_opt", "System Optimization", 200, "Speed boost, cleanup, startup fix."),
				item("sw_print", "Printer/Peripheral Setup", 150, "Setup & driver installation."),
				item("sw_pass", "Password Reset", 150, "Account unlock service."),
				item("sw_net", "Network & Sharing Setup", 200, "Wi-Fi, LAN, printers. (From R200)"),
				item("sw_remote", "Remote Support", 150, "AnyDesk/TeamViewer per session."),
			},
		},
		{
			ID:          "cat_hardware",
			ServiceType: "Hardware Services",
			Description: "Repairs, replacements, and upgrades for physical components.",
			Services: []models.ServiceItem{
				item("hw_ram", "RAM Upgrade", 200, "Memory replacement/upgrade. (From R200)"),
				item("hw_hdd", "Hard Drive Replacement", 450, "Storage upgrade/swap. (From R450)"),
				item("hw_ssd", "SSD Upgrade", 600, "Speed upgrade. (From R600)"),
				item("hw_charger", "Charger Replacement", 250, "Laptop charger replacement. (From R250)"),
				item("hw_bat", "Battery Replacement", 500, "Laptop battery swap. (From R500)"),
				item("hw_screen", "Screen Replacement", 700, "Laptop/Monitor. (From R700)"),
				item("hw_key", "Keyboard Replacement", 300, "Laptop keyboard. (From R300)"),
				item("hw_touch", "Touchpad Replacement", 300, "Trackpad fix. (From R300)"),
				item("hw_mobo", "Motherboard Repair", 800, "Repair or replacement. (From R800)"),
				item("hw_psu", "PSU Replacement", 450, "Power Supply Unit. (From R450)"),
				item("hw_fan", "Cooling Fan Repair", 300, "Overheating fix. (From R300)"),
				item("hw_usb", "USB Port Repair", 300, "Port replacement. (From R300)"),
				item("hw_hinge", "Hinge Repair", 350, "Laptop casing/hinge fix. (From R350)"),
				item("hw_gpu", "GPU Replacement", 600, "Graphics card upgrade. (From R600)"),
				item("hw_diag", "Hardware Diagnostics", 300, "General troubleshooting. (From R300)"),
			},
		},
		{
			ID:          "cat_security",
			ServiceType: "Data & Security",
			Description: "Backups, recovery, and secure data handling.",
			Services: []models.ServiceItem{
				item("ds_backup", "Data Backup Setup", 200, "Cloud or external drive. (From R200)"),
				item("ds_full_back", "Full System Backup", 350, "Backup & Restore. (From R350)"),
				item("ds_rec_hdd", "Hard Drive Data Recovery", 500, "Corrupted drive recovery. (From R500)"),
				item("ds_part", "Partition Management", 200, "Drive formatting/partitioning. (From R200)"),
				item("ds_trans", "Data Transfer", 250, "Old PC to New PC. (From R250)"),
			},
		},
		{
			ID:          "cat_custom",
			ServiceType: "Custom Services",
			Description: "Specialized diagnostics and on-site support.",
			Services: []models.ServiceItem{
				item("cs_opt", "PC Performance Tune-up", 200, "Full optimization."),
				item("cs_diag", "Full Diagnostics", 200, "Hardware & Software check."),
				item("cs_visit", "On-Site Technician", 150, "Call-out fee per visit."),
			},
		},
	}
}

// Tickets returns the sample service requests, dated relative to now.
func Tickets(now time.Time) []models.ServiceRequest {
	day := 24 * time.Hour
	return []models.ServiceRequest{
		{
			ID:            "t1",
			CustomerName:  "Thabo Mbeki",
			ContactMethod: "WhatsApp",
			ContactValue:  "+27 63 000 0000",
			ServiceType:   "Blue Screen Fix",
			Description:   "Laptop showing blue screen error 0x00000",
			Status:        models.TicketNew,
			DateCreated:   now.Add(-2 * day).UTC(),
		},
		{
			ID:            "t2",
			CustomerName:  "Sarah Jenkins",
			ContactMethod: "Phone",
			ContactValue:  "072 123 4567",
			ServiceType:   "Microsoft Office",
			Description:   "Need Office 2021 installed for university work",
			Status:        models.TicketCompleted,
			DateCreated:   now.Add(-day).UTC(),
		},
	}
}
