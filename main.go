package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"motocare/database"
	"motocare/handlers"
	"motocare/models"
	"motocare/routes"
	"motocare/services"
	"motocare/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Infof("No .env file found, using default environment variables: %v", err)
	}

	utils.InitJWTSecret()

	database.InitDB()

	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.VehicleCoding{},
		&models.SparePart{},
		&models.ServiceRule{},
		&models.ServiceHistory{},
		&models.MaintenanceSchedule{},
		&models.Notification{},
		&models.Trip{},
	); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	log.Info("Database migration completed")

	seedServiceRules()
	seedVehicleCodings()
	seedSpareParts()

	store := database.NewGormStore(database.DB)
	scheduler := services.NewScheduler(store)

	dispatcher := services.NewAsyncDispatcher(scheduler, 64)
	dispatcher.Start()
	defer dispatcher.Stop()

	flows := services.NewFlows(store, dispatcher)
	handlers.Init(flows)

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = gin.ReleaseMode
	}
	gin.SetMode(ginMode)
	log.Infof("Gin mode set to %s", ginMode)

	r := gin.Default()
	r.Use(routes.RequestIDMiddleware())

	api := r.Group("/api")
	{
		routes.Path(api)
	}

	c := cron.New()

	// Recompute every vehicle's maintenance schedule once an hour.
	_, err := c.AddFunc("0 * * * *", func() {
		log.Info("Running scheduled maintenance sweep...")
		sweepSchedules(dispatcher)
	})
	if err != nil {
		log.Fatalf("Failed to schedule maintenance sweep cron job: %v", err)
	}

	c.Start()
	log.Info("Cron jobs started")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Infof("Starting server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// sweepSchedules enqueues a recompute for every vehicle.
func sweepSchedules(dispatcher services.Dispatcher) {
	var vehicleIDs []int
	if err := database.DB.Model(&models.Vehicle{}).Pluck("vehicle_id", &vehicleIDs).Error; err != nil {
		log.Errorf("Maintenance sweep failed to list vehicles: %v", err)
		return
	}
	for _, id := range vehicleIDs {
		dispatcher.Enqueue(id)
	}
	log.Infof("Maintenance sweep enqueued %d vehicles", len(vehicleIDs))
}

// seedServiceRules inserts the default service catalog when the table
// is empty.
func seedServiceRules() {
	var count int64
	if err := database.DB.Model(&models.ServiceRule{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count service rules: %v", err)
	}
	if count > 0 {
		log.Infof("Service rules already seeded (%d rows)", count)
		return
	}

	rules := []models.ServiceRule{
		{ServiceName: "Ganti Oli", IntervalKm: 3000, WarningThresholdKm: 300, Description: "Engine oil replacement"},
		{ServiceName: "Servis CVT", IntervalKm: 8000, WarningThresholdKm: 100, Description: "CVT cleaning and inspection"},
		{ServiceName: "Ganti Oli Gardan", IntervalKm: 9000, WarningThresholdKm: 100, Description: "Gear oil replacement"},
		{ServiceName: "Ganti Busi", IntervalKm: 10000, WarningThresholdKm: 100, Description: "Spark plug replacement"},
		{ServiceName: "Servis Throttle Body", IntervalKm: 12000, WarningThresholdKm: 100, Description: "Throttle body cleaning"},
		{ServiceName: "Ganti Roller CVT", IntervalKm: 24000, WarningThresholdKm: 100, Description: "CVT roller replacement"},
		{ServiceName: "Ganti V-Belt", IntervalKm: 25000, WarningThresholdKm: 100, Description: "V-belt replacement"},
		{ServiceName: "Ganti Aki", IntervalKm: 30000, WarningThresholdKm: 100, Description: "Battery replacement"},
	}
	if err := database.DB.Create(&rules).Error; err != nil {
		log.Fatalf("Failed to seed service rules: %v", err)
	}
	log.Infof("Seeded %d default service rules", len(rules))
}

// seedVehicleCodings inserts the brand/model/year lookup rows when the
// table is empty.
func seedVehicleCodings() {
	var count int64
	if err := database.DB.Model(&models.VehicleCoding{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count vehicle codings: %v", err)
	}
	if count > 0 {
		return
	}

	codings := []models.VehicleCoding{
		{Brand: "Honda", Model: "Beat", YearStart: 2012, YearEnd: 2025, VehicleCode: "HND-BEAT"},
		{Brand: "Honda", Model: "Vario 125", YearStart: 2012, YearEnd: 2025, VehicleCode: "HND-VARIO125"},
		{Brand: "Honda", Model: "Vario 160", YearStart: 2022, YearEnd: 2025, VehicleCode: "HND-VARIO160"},
		{Brand: "Honda", Model: "PCX", YearStart: 2014, YearEnd: 2025, VehicleCode: "HND-PCX"},
		{Brand: "Honda", Model: "Scoopy", YearStart: 2013, YearEnd: 2025, VehicleCode: "HND-SCOOPY"},
		{Brand: "Yamaha", Model: "Aerox", YearStart: 2017, YearEnd: 2025, VehicleCode: "YMH-AEROX"},
		{Brand: "Yamaha", Model: "NMAX", YearStart: 2015, YearEnd: 2025, VehicleCode: "YMH-NMAX"},
		{Brand: "Yamaha", Model: "Lexi", YearStart: 2018, YearEnd: 2025, VehicleCode: "YMH-LEXI"},
		{Brand: "Suzuki", Model: "Nex II", YearStart: 2018, YearEnd: 2025, VehicleCode: "SZK-NEX2"},
	}
	if err := database.DB.Create(&codings).Error; err != nil {
		log.Fatalf("Failed to seed vehicle codings: %v", err)
	}
	log.Infof("Seeded %d vehicle codings", len(codings))
}

// seedSpareParts inserts the spare part catalog when the table is empty.
func seedSpareParts() {
	var count int64
	if err := database.DB.Model(&models.SparePart{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count spare parts: %v", err)
	}
	if count > 0 {
		return
	}

	parts := []models.SparePart{
		{VehicleCode: "HND-BEAT", ServiceName: "Ganti Oli", PartName: "AHM Oil MPX2 0.8L", PartCode: "08232-M99-K8JN1"},
		{VehicleCode: "HND-BEAT", ServiceName: "Ganti Busi", PartName: "NGK CPR9EA-9", PartCode: "31916-KVB-901"},
		{VehicleCode: "HND-BEAT", ServiceName: "Ganti V-Belt", PartName: "Honda V-Belt Kit Beat", PartCode: "23100-K25-601"},
		{VehicleCode: "HND-VARIO125", ServiceName: "Ganti Oli", PartName: "AHM Oil MPX2 0.8L", PartCode: "08232-M99-K8JN1"},
		{VehicleCode: "HND-VARIO125", ServiceName: "Ganti V-Belt", PartName: "Honda V-Belt Kit Vario 125", PartCode: "23100-KZR-601"},
		{VehicleCode: "YMH-AEROX", ServiceName: "Ganti Oli", PartName: "Yamalube Power Matic 0.8L", PartCode: "90793-AH815"},
		{VehicleCode: "YMH-AEROX", ServiceName: "Ganti V-Belt", PartName: "Yamaha V-Belt Aerox", PartCode: "B65-E7641-00"},
		{VehicleCode: "YMH-NMAX", ServiceName: "Ganti Oli", PartName: "Yamalube Power Matic 0.8L", PartCode: "90793-AH815"},
		{VehicleCode: "YMH-NMAX", ServiceName: "Ganti Busi", PartName: "NGK CPR8EA-9", PartCode: "94701-00385"},
	}
	if err := database.DB.Create(&parts).Error; err != nil {
		log.Fatalf("Failed to seed spare parts: %v", err)
	}
	log.Infof("Seeded %d spare parts", len(parts))
}
