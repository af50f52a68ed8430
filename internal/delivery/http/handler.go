package http

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volantino/backend/internal/domain"
	"github.com/volantino/backend/internal/usecase"
)

// sessionHeader carries the browse session id; the server issues one on the
// first browse call and echoes it on every response.
const sessionHeader = "X-Browse-Session"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	cart    *usecase.CartService
	catalog *usecase.CatalogService
	compare *usecase.CompareService

	browseConfig usecase.BrowseConfig
	sessions     map[string]*usecase.BrowseSession
	mutex        sync.Mutex
}

// NewHandler creates a new HTTP handler
func NewHandler(
	cart *usecase.CartService,
	catalog *usecase.CatalogService,
	compare *usecase.CompareService,
	browseConfig usecase.BrowseConfig,
) *Handler {
	return &Handler{
		cart:         cart,
		catalog:      catalog,
		compare:      compare,
		browseConfig: browseConfig,
		sessions:     make(map[string]*usecase.BrowseSession),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "volantino-backend",
		"version": "1.0.0",
	})
}

// ListSupermarkets returns the selectable store list from startup config
func (h *Handler) ListSupermarkets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"supermarkets": h.browseConfig.Supermarkets,
		"default":      h.browseConfig.DefaultSupermarket,
	})
}

// SearchProducts proxies a stateless catalog query
func (h *Handler) SearchProducts(c *gin.Context) {
	var filters domain.SearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parametri di ricerca non validi"})
		return
	}

	page, err := h.catalog.Search(c.Request.Context(), filters)
	if err != nil {
		log.Printf("[HTTP] catalog search failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Errore di rete."})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetCart returns the rendering-ready shopping list
func (h *Handler) GetCart(c *gin.Context) {
	view, err := h.cart.View(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "impossibile leggere la lista"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddCartItem adds the posted product snapshot to the cart
func (h *Handler) AddCartItem(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prodotto non valido"})
		return
	}

	if _, err := h.cart.AddToCart(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "impossibile aggiornare la lista"})
		return
	}
	h.GetCart(c)
}

// UpdateCartItem adjusts a line's quantity by the posted delta
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var body struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delta non valido"})
		return
	}

	if _, err := h.cart.ChangeQty(c.Request.Context(), c.Param("id"), body.Delta); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "impossibile aggiornare la lista"})
		return
	}
	h.GetCart(c)
}

// DeleteCartItem removes a line from the cart
func (h *Handler) DeleteCartItem(c *gin.Context) {
	if _, err := h.cart.RemoveFromCart(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "impossibile aggiornare la lista"})
		return
	}
	h.GetCart(c)
}

// ClearCart empties the shopping list
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "impossibile svuotare la lista"})
		return
	}
	h.GetCart(c)
}

// ExportCart returns the shopping list as plain text, one line per item,
// ready for the caller to copy to a clipboard.
func (h *Handler) ExportCart(c *gin.Context) {
	text, err := h.cart.ExportText(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "impossibile esportare la lista"})
		return
	}
	c.String(http.StatusOK, text)
}

// CompareCart prices the whole cart across stores
func (h *Handler) CompareCart(c *gin.Context) {
	result, err := h.compare.Compare(c.Request.Context())
	if err != nil {
		log.Printf("[HTTP] compare failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Errore nel confronto prezzi."})
		return
	}
	c.JSON(http.StatusOK, h.compare.BuildView(result))
}

// session returns the browse session for the request, creating one (and a
// fresh id) when the header is missing or unknown. The id is always echoed
// so the client can stick to its session.
func (h *Handler) session(c *gin.Context) *usecase.BrowseSession {
	id := c.GetHeader(sessionHeader)

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if id != "" {
		if session, ok := h.sessions[id]; ok {
			c.Header(sessionHeader, id)
			return session
		}
	}

	id = uuid.NewString()
	session := usecase.NewBrowseSession(h.catalog, h.browseConfig)
	h.sessions[id] = session
	c.Header(sessionHeader, id)
	return session
}

// browsePage writes the outcome of a browse transition
func (h *Handler) browsePage(c *gin.Context, page *usecase.ProductPage, err error) {
	if err != nil {
		if errors.Is(err, domain.ErrStaleResponse) {
			c.JSON(http.StatusConflict, gin.H{"error": "richiesta superata da una più recente"})
			return
		}
		log.Printf("[HTTP] browse refresh failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Errore di rete."})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetBrowse returns the current page for the session, fetching it on first
// access
func (h *Handler) GetBrowse(c *gin.Context) {
	session := h.session(c)
	if page := session.Current(); page != nil {
		c.JSON(http.StatusOK, page)
		return
	}
	page, err := session.Refresh(c.Request.Context())
	h.browsePage(c, page, err)
}

// BrowseQuery sets the free-text query, resetting the pager
func (h *Handler) BrowseQuery(c *gin.Context) {
	var body struct {
		Q string `json:"q"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query non valida"})
		return
	}
	session := h.session(c)
	page, err := session.SetQuery(c.Request.Context(), body.Q)
	h.browsePage(c, page, err)
}

// BrowseSupermarket sets the store filter, resetting the pager
func (h *Handler) BrowseSupermarket(c *gin.Context) {
	var body struct {
		Supermercato string `json:"supermercato"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supermercato non valido"})
		return
	}
	session := h.session(c)
	page, err := session.SetSupermarket(c.Request.Context(), body.Supermercato)
	h.browsePage(c, page, err)
}

// BrowseNext advances the pager
func (h *Handler) BrowseNext(c *gin.Context) {
	session := h.session(c)
	page, err := session.NextPage(c.Request.Context())
	h.browsePage(c, page, err)
}

// BrowsePrev steps the pager back
func (h *Handler) BrowsePrev(c *gin.Context) {
	session := h.session(c)
	page, err := session.PrevPage(c.Request.Context())
	h.browsePage(c, page, err)
}
