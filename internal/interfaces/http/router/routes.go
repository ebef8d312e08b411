package router

import (
	"github.com/cropledger/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the API mounts
type Handlers struct {
	System       *handler.SystemHandler
	Partners     *handler.PartnerHandler
	SupplyRecord *handler.SupplyRecordHandler
	Cash         *handler.CashHandler
	Reports      *handler.ReportHandler
	Anomalies    *handler.AnomalyHandler
}

// DomainGroups returns the route groups of the settlement API
func DomainGroups(h Handlers) []RouteRegistrar {
	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo)

	partners := NewDomainGroup("partners", "")
	partners.
		GET("/trucks", h.Partners.ListTrucks).
		POST("/trucks", h.Partners.EnsureTruck).
		GET("/farms", h.Partners.ListFarms).
		POST("/farms", h.Partners.EnsureFarm).
		GET("/factories", h.Partners.ListFactories).
		POST("/factories", h.Partners.EnsureFactory)
	partners.Group("contractors", "/contractors").
		GET("", h.Partners.ListContractors).
		POST("", h.Partners.CreateContractor).
		PUT("/:id", h.Partners.UpdateContractor).
		DELETE("/:id", h.Partners.DeleteContractor)

	records := NewDomainGroup("supply-records", "/supply-records").
		GET("", h.SupplyRecord.List).
		POST("", h.SupplyRecord.Create).
		GET("/:id", h.SupplyRecord.Get).
		PUT("/:id", h.SupplyRecord.Update).
		DELETE("/:id", h.SupplyRecord.Delete).
		GET("/:id/settlement", h.SupplyRecord.Settlement).
		PUT("/:id/factory-weight", h.SupplyRecord.SetFactoryWeight).
		PUT("/:id/received", h.SupplyRecord.RecordReceived)

	receipts := NewDomainGroup("cash-receipts", "/cash-receipts").
		GET("", h.Cash.ListReceipts).
		POST("", h.Cash.CreateReceipt).
		PUT("/:id", h.Cash.UpdateReceipt).
		DELETE("/:id", h.Cash.DeleteReceipt)

	disbursements := NewDomainGroup("cash-disbursements", "/cash-disbursements").
		GET("", h.Cash.ListDisbursements).
		POST("", h.Cash.CreateDisbursement).
		PUT("/:id", h.Cash.UpdateDisbursement).
		DELETE("/:id", h.Cash.DeleteDisbursement)

	ledger := NewDomainGroup("ledger", "/ledger").
		GET("", h.Cash.Ledger).
		GET("/counterparties", h.Cash.Counterparties)

	reports := NewDomainGroup("reports", "/reports").
		GET("/records", h.Reports.Records).
		GET("/period", h.Reports.Period).
		GET("/factories", h.Reports.Factories).
		GET("/farms", h.Reports.Farms).
		GET("/cash", h.Reports.Cash)

	anomalies := NewDomainGroup("anomalies", "/anomalies").
		GET("", h.Anomalies.Scan).
		POST("/auto-fix", h.Anomalies.AutoFix).
		PUT("/:id/factory-weight", h.Anomalies.ResolveFactoryWeight).
		PUT("/:id/farm", h.Anomalies.ResolveFarm).
		PUT("/:id/factory", h.Anomalies.ResolveFactory).
		PUT("/:id/truck", h.Anomalies.ResolveTruck)

	return []RouteRegistrar{system, partners, records, receipts, disbursements, ledger, reports, anomalies}
}

// RegisterHealthRoutes mounts the unversioned liveness and readiness endpoints
func RegisterHealthRoutes(engine *gin.Engine, system *handler.SystemHandler) {
	engine.GET("/health", system.Health)
	engine.GET("/ping", system.Ping)
}
