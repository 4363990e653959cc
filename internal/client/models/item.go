// Package models defines the client-side types shared by the inventory
// screens: sessions, roles, components and toasts.
package models

import (
	"slices"
	"strings"
)

// Category is one of the closed set of component categories.
type Category string

const (
	CategoryMicrocontroller     Category = "Microcontroller"
	CategorySensor              Category = "Sensor"
	CategoryMotor               Category = "Motor"
	CategoryDisplay             Category = "Display"
	CategoryPowerSupply         Category = "Power Supply"
	CategoryCommunicationModule Category = "Communication Module"
	CategoryStorage             Category = "Storage"
	CategoryPassiveComponent    Category = "Passive Component"
	CategoryOther               Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryMicrocontroller,
	CategorySensor,
	CategoryMotor,
	CategoryDisplay,
	CategoryPowerSupply,
	CategoryCommunicationModule,
	CategoryStorage,
	CategoryPassiveComponent,
	CategoryOther,
}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Supplier is one of the closed set of component suppliers.
type Supplier string

const (
	SupplierArduino            Supplier = "Arduino"
	SupplierRaspberryPi        Supplier = "Raspberry Pi"
	SupplierAdafruit           Supplier = "Adafruit"
	SupplierSparkFun           Supplier = "SparkFun"
	SupplierSeeedStudio        Supplier = "Seeed Studio"
	SupplierDFRobot            Supplier = "DFRobot"
	SupplierPololu             Supplier = "Pololu"
	SupplierTexasInstruments   Supplier = "Texas Instruments"
	SupplierSTMicroelectronics Supplier = "STMicroelectronics"
	SupplierEspressif          Supplier = "Espressif"
	SupplierOther              Supplier = "Other"
)

// Suppliers lists every valid supplier in display order.
var Suppliers = []Supplier{
	SupplierArduino,
	SupplierRaspberryPi,
	SupplierAdafruit,
	SupplierSparkFun,
	SupplierSeeedStudio,
	SupplierDFRobot,
	SupplierPololu,
	SupplierTexasInstruments,
	SupplierSTMicroelectronics,
	SupplierEspressif,
	SupplierOther,
}

func (s Supplier) Valid() bool {
	return slices.Contains(Suppliers, s)
}

// Item is an inventory component as held by the dashboard.
type Item struct {
	ID             string
	Name           string
	Category       Category
	Stock          int
	MinStock       int
	Specifications string
	Supplier       Supplier
}

// LowStock reports whether on-hand stock is at or below the minimum.
func (i Item) LowStock() bool {
	return i.Stock <= i.MinStock
}

// StockStatus is the label shown next to the stock figure.
func (i Item) StockStatus() string {
	if i.LowStock() {
		return "Low Stock"
	}
	return "In Stock"
}

// Matches reports whether query occurs, case-insensitively, in the item's
// name, category or specifications. The empty query matches everything.
func (i Item) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(i.Name), q) ||
		strings.Contains(strings.ToLower(string(i.Category)), q) ||
		strings.Contains(strings.ToLower(i.Specifications), q)
}

// Input returns the editable fields of i.
func (i Item) Input() ItemInput {
	return ItemInput{
		Name:           i.Name,
		Category:       i.Category,
		Stock:          i.Stock,
		MinStock:       i.MinStock,
		Specifications: i.Specifications,
		Supplier:       i.Supplier,
	}
}

// WithInput returns a copy of i with its editable fields replaced by in.
// The identifier is kept.
func (i Item) WithInput(in ItemInput) Item {
	return Item{
		ID:             i.ID,
		Name:           in.Name,
		Category:       in.Category,
		Stock:          in.Stock,
		MinStock:       in.MinStock,
		Specifications: in.Specifications,
		Supplier:       in.Supplier,
	}
}

// ItemInput is a validated create/update payload.
type ItemInput struct {
	Name           string
	Category       Category
	Stock          int
	MinStock       int
	Specifications string
	Supplier       Supplier
}
