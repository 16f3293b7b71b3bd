// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tycoon/internal/delivery/http/middleware"
	"tycoon/internal/delivery/http/router/handler"
	"tycoon/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler      *handler.AccountHandler
	PlayerHandler       *handler.PlayerHandler
	ShopHandler         *handler.ShopHandler
	PortfolioHandler    *handler.PortfolioHandler
	MinigameHandler     *handler.MinigameHandler
	ClassroomHandler    *handler.ClassroomHandler
	ContentHandler      *handler.ContentHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.params.RequestIDMiddleware.Handle)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.params.AccountHandler.Register)
		authGroup.POST("/login", r.params.AccountHandler.Login)
	}

	authed := r.params.AuthMiddleware.Authenticate

	// Account routes for the logged-in player.
	accountGroup := e.Group("/account", authed)
	{
		accountGroup.POST("/logout", r.params.AccountHandler.Logout)
		accountGroup.GET("/profile", r.params.AccountHandler.GetProfile)
		accountGroup.PUT("/settings", r.params.AccountHandler.UpdateSettings)
		accountGroup.POST("/levelup/dismiss", r.params.PlayerHandler.DismissLevelUp)
	}

	energyGroup := e.Group("/energy", authed)
	{
		energyGroup.GET("", r.params.PlayerHandler.EnergyStatus)
		energyGroup.POST("/consume", r.params.PlayerHandler.ConsumeEnergy)
	}

	subscriptionGroup := e.Group("/subscription", authed)
	{
		subscriptionGroup.GET("", r.params.PlayerHandler.GetSubscription)
		subscriptionGroup.PUT("", r.params.PlayerHandler.ChangeSubscription)
	}

	// One-time reward activities.
	progressGroup := e.Group("/progress", authed)
	{
		progressGroup.POST("/lessons/:lessonID/complete", r.params.PlayerHandler.CompleteLesson)
		progressGroup.POST("/books/:bookID/read", r.params.PlayerHandler.ReadBook)
	}

	shopGroup := e.Group("/shop", authed)
	{
		shopGroup.GET("/catalog", r.params.ShopHandler.Catalog)
		shopGroup.POST("/items/:itemID/buy", r.params.ShopHandler.BuyItem)
		shopGroup.POST("/items/:itemID/equip", r.params.ShopHandler.EquipItem)
		shopGroup.POST("/items/:itemID/unequip", r.params.ShopHandler.UnequipItem)
		shopGroup.POST("/skills/:skillID/unlock", r.params.ShopHandler.UnlockSkill)
		shopGroup.POST("/hq/:hqID/upgrade", r.params.ShopHandler.UpgradeHQ)
	}

	portfolioGroup := e.Group("/portfolio", authed)
	{
		portfolioGroup.GET("", r.params.PortfolioHandler.GetPortfolio)
		portfolioGroup.POST("/:businessID/manager", r.params.PortfolioHandler.HireManager)
		portfolioGroup.POST("/:businessID/manager/upgrade", r.params.PortfolioHandler.UpgradeManager)
		portfolioGroup.POST("/collect", r.params.PortfolioHandler.CollectIncome)
	}

	minigameGroup := e.Group("/minigames", authed)
	{
		minigameGroup.POST("/:gameID/day", r.params.MinigameHandler.SimulateDay)
		minigameGroup.POST("/:gameID/upgrades", r.params.MinigameHandler.BuyUpgrade)
		minigameGroup.POST("/:gameID/supplies", r.params.MinigameHandler.BuySupplies)
		minigameGroup.GET("/:gameID/save", r.params.MinigameHandler.GetSave)
		minigameGroup.DELETE("/:gameID/save", r.params.MinigameHandler.ResetSave)
	}

	// Classroom routes; ownership and role checks live in the usecase.
	classroomGroup := e.Group("/classrooms", authed)
	{
		classroomGroup.POST("", r.params.ClassroomHandler.Create)
		classroomGroup.GET("/mine", r.params.ClassroomHandler.ListMine)
		classroomGroup.POST("/join", r.params.ClassroomHandler.Join)
		classroomGroup.GET("/:classroomID", r.params.ClassroomHandler.Get)
		classroomGroup.PUT("/:classroomID", r.params.ClassroomHandler.Rename)
		classroomGroup.DELETE("/:classroomID", r.params.ClassroomHandler.Delete)
		classroomGroup.GET("/:classroomID/qr", r.params.ClassroomHandler.JoinQR)
		classroomGroup.POST("/:classroomID/groups", r.params.ClassroomHandler.CreateGroup)
		classroomGroup.DELETE("/groups/:groupID", r.params.ClassroomHandler.DeleteGroup)
		classroomGroup.POST("/:classroomID/assignments", r.params.ClassroomHandler.CreateAssignment)
		classroomGroup.GET("/:classroomID/assignments", r.params.ClassroomHandler.ListAssignments)
		classroomGroup.DELETE("/assignments/:assignmentID", r.params.ClassroomHandler.DeleteAssignment)
		classroomGroup.POST("/assignments/:assignmentID/submissions", r.params.ClassroomHandler.Submit)
		classroomGroup.GET("/assignments/:assignmentID/submissions", r.params.ClassroomHandler.ListSubmissions)
		classroomGroup.POST("/submissions/:submissionID/grade", r.params.ClassroomHandler.Grade)
	}

	// CMS content: reads for any account, writes for admins only.
	contentGroup := e.Group("/content", authed)
	{
		contentGroup.GET("/lessons", r.params.ContentHandler.ListLessons)
		contentGroup.GET("/lessons/:lessonID", r.params.ContentHandler.GetLesson)
		contentGroup.GET("/books", r.params.ContentHandler.ListBooks)
		contentGroup.GET("/simulations", r.params.ContentHandler.ListSimulations)
	}

	adminContentGroup := e.Group("/content", authed, r.params.AuthMiddleware.RequireRole(string(entity.RoleAdmin)))
	{
		adminContentGroup.PUT("/lessons/:lessonID", r.params.ContentHandler.UpsertLesson)
		adminContentGroup.DELETE("/lessons/:lessonID", r.params.ContentHandler.DeleteLesson)
		adminContentGroup.PUT("/books/:bookID", r.params.ContentHandler.UpsertBook)
		adminContentGroup.DELETE("/books/:bookID", r.params.ContentHandler.DeleteBook)
		adminContentGroup.PUT("/simulations/:simID", r.params.ContentHandler.UpsertSimulation)
		adminContentGroup.DELETE("/simulations/:simID", r.params.ContentHandler.DeleteSimulation)
	}
}
