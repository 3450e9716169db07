package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/emilearthur/todo/store"

	"github.com/gin-gonic/gin"
)

// Feed streams open todos as create/update events, newest first. Query
// params: page_size (default 20, max 50) and starting_date, the event
// timestamp of the last item seen (RFC 3339). The response echoes the last
// event timestamp so clients can pass it back as the next cursor.
func Feed(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		pageSize := 20
		if raw := c.Query("page_size"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
				return
			}
			pageSize = parsed
		}

		startingAt := time.Now()
		if raw := c.Query("starting_date"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "starting_date must be RFC 3339"})
				return
			}
			startingAt = parsed
		}

		items, err := s.Feed(user, pageSize, startingAt)
		if err != nil {
			respondError(c, err)
			return
		}

		// Batch-load the owners so each feed item can show who posted it.
		ownerIDs := make([]uint, 0, len(items))
		seen := make(map[uint]struct{})
		for _, item := range items {
			if _, exists := seen[item.Todo.OwnerID]; !exists {
				seen[item.Todo.OwnerID] = struct{}{}
				ownerIDs = append(ownerIDs, item.Todo.OwnerID)
			}
		}

		ownerNames := make(map[uint]string)
		if owners, err := s.UsersByIDs(ownerIDs); err == nil {
			for _, owner := range owners {
				ownerNames[owner.ID] = owner.Username
			}
		}

		out := make([]gin.H, 0, len(items))
		for _, item := range items {
			out = append(out, gin.H{
				"todo":           item.Todo,
				"owner":          ownerNames[item.Todo.OwnerID],
				"eventType":      item.EventType,
				"eventTimestamp": item.EventTimestamp,
			})
		}

		resp := gin.H{"items": out}
		if len(items) > 0 {
			resp["nextCursor"] = items[len(items)-1].EventTimestamp
		}

		c.JSON(http.StatusOK, resp)
	}
}
