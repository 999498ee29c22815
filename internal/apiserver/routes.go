package apiserver

// registerRoutes wires every API endpoint to its handler.
func (s *Server) registerRoutes() {
	// Health
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/agent").Subrouter()

	// Turns
	api.HandleFunc("/think", s.handleThink).Methods("POST")

	// Actions
	api.HandleFunc("/actions", s.handleListActions).Methods("GET")

	// Sessions
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")
	api.HandleFunc("/sessions/{id}/reset", s.handleResetSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")
}
