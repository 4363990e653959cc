package devapi

import "fmt"

// DemoPassword is the password of the pre-filled demo login.
const DemoPassword = "••••••••••"

type seedUser struct {
	name, password, userType string
}

var seedUsers = []seedUser{
	{"John Smith", DemoPassword, "user"},
	{"admin", "admin123", "admin"},
	{"technician", "tech123", "technician"},
}

var seedItems = []Record{
	{Name: "Arduino Uno R3", Category: "Microcontroller", Stock: 45, MinStock: 20, Specifications: "ATmega328P, 16MHz, 5V, 14 Digital I/O", Supplier: "Arduino"},
	{Name: "DHT22 Temperature Sensor", Category: "Sensor", Stock: 12, MinStock: 15, Specifications: "-40 to 80°C, ±0.5°C accuracy, Humidity", Supplier: "Adafruit"},
	{Name: "ESP32 DevKit", Category: "Microcontroller", Stock: 8, MinStock: 10, Specifications: "WiFi/BT, Dual-core 240MHz, 4MB Flash", Supplier: "Espressif"},
	{Name: `OLED Display 0.96"`, Category: "Display", Stock: 67, MinStock: 30, Specifications: "128x64, I2C/SPI, White/Blue", Supplier: "Adafruit"},
	{Name: "HC-05 Bluetooth Module", Category: "Communication Module", Stock: 23, MinStock: 15, Specifications: "Class 2, 10m range, UART interface", Supplier: "SparkFun"},
}

// Seed loads the demo accounts and the sample components.
func Seed(s *Store) error {
	for _, u := range seedUsers {
		if _, err := s.AddUser(u.name, u.password, u.userType); err != nil {
			return fmt.Errorf("seed user %s: %w", u.name, err)
		}
	}
	for _, r := range seedItems {
		s.AddItem(r)
	}
	return nil
}
