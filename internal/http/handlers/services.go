package handlers

import (
	"flightschool/internal/http/middleware"
	"flightschool/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) invoiceService(c *gin.Context) services.InvoiceService {
	return services.InvoiceService{Store: h.Store, DueDays: h.DueDays, Now: h.Now, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Store:     h.Store,
		Mailer:    h.Mailer,
		Invoices:  h.invoiceService(c),
		RequestID: middleware.GetRequestID(c),
		Now:       h.Now,
	}
}

func (h *Handlers) paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{Store: h.Store, Now: h.Now, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) docsService(c *gin.Context) services.DocsService {
	return services.DocsService{Store: h.Store, Now: h.Now, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) aircraftService(c *gin.Context) services.AircraftService {
	return services.AircraftService{Store: h.Store, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) memberService(c *gin.Context) services.MemberService {
	return services.MemberService{Store: h.Store, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) defectService(c *gin.Context) services.DefectService {
	return services.DefectService{Store: h.Store, Now: h.Now, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) catalogService(c *gin.Context) services.CatalogService {
	return services.CatalogService{Store: h.Store, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) debriefService(c *gin.Context) services.DebriefService {
	return services.DebriefService{Store: h.Store, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) signoutService(c *gin.Context) services.SignoutService {
	return services.SignoutService{Store: h.Store, Now: h.Now, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) taskService(c *gin.Context) services.TaskService {
	return services.TaskService{Store: h.Store, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) trainingService(c *gin.Context) services.TrainingService {
	return services.TrainingService{Store: h.Store, Now: h.Now, RequestID: middleware.GetRequestID(c)}
}

func (h *Handlers) authService(c *gin.Context) services.AuthService {
	svc := h.Auth
	svc.Store = h.Store
	svc.RequestID = middleware.GetRequestID(c)
	if h.Now != nil {
		svc.Now = h.Now
	}
	return svc
}
