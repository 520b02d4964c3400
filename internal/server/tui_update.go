// ABOUTME: TUI update helpers for the server
// ABOUTME: Builds display snapshots from live client state
package server

// updateTUI sends current server state to the TUI
func (s *Server) updateTUI() {
	if s.tui == nil {
		return
	}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	clients := make([]ClientInfo, 0, len(s.clients))
	for _, client := range s.clients {
		client.mu.RLock()
		info := ClientInfo{
			Name:           client.Name,
			ID:             client.ID,
			Codec:          client.Format.Codec,
			Streams:        client.manager.Count(),
			LastEmotion:    client.lastEmotion,
			LastConfidence: client.lastConfidence,
		}
		client.mu.RUnlock()

		clients = append(clients, info)
	}

	s.tui.Update(ServerStatus{
		Name:     s.config.Name,
		Port:     s.config.Port,
		Emotions: s.library.Emotions(),
		Clients:  clients,
	})
}
