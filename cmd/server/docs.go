package main

// @title Favorites API
// @version 1.0
// @description REST API for favoriting products from an external catalog, with JWT auth and role-based access

// @contact.name API Support

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Catalog
// @tag.description External catalog browsing endpoints

// @tag.name Favorites
// @tag.description Favorite management endpoints

// @tag.name Users
// @tag.description User profile endpoints

// @tag.name Admin
// @tag.description Admin-only endpoints

// @tag.name Health
// @tag.description Health check endpoints
