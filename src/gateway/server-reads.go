package gateway

import (
	"net/http"
	"strconv"

	"github.com/dapplist/registry/src/gateway/response"
	. "github.com/dapplist/registry/src/utils/logger"

	"github.com/gin-gonic/gin"
	cache "github.com/patrickmn/go-cache"
)

// cached serves the response from the read cache or computes and
// stores it. Errors are never cached.
func (self *Server) cached(c *gin.Context, key string, compute func() (any, error)) {
	if out, found := self.cache.Get(key); found {
		c.JSON(http.StatusOK, out)
		return
	}

	out, err := compute()
	if err != nil {
		LOGE(c, err, statusFor(err)).Debug("Read failed")
		return
	}

	self.cache.Set(key, out, cache.DefaultExpiration)
	c.JSON(http.StatusOK, out)
}

// pagination reads offset and limit from the query. A missing or invalid
// limit falls back to the default, an explicit zero requests the rest of
// the sequence.
func (self *Server) pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.Query("offset"))

	limit = self.Config.Gateway.DefaultLimit
	if raw, ok := c.GetQuery("limit"); ok {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	return
}

func (self *Server) onGetListing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Bad listing id")
		return
	}

	self.cached(c, "listing/"+c.Param("id"), func() (any, error) {
		return self.engine.GetListing(id)
	})
}

func (self *Server) onGetListingBySlug(c *gin.Context) {
	slug := c.Param("slug")
	self.cached(c, "listing/slug/"+slug, func() (any, error) {
		return self.engine.GetListingBySlug(slug)
	})
}

func (self *Server) onGetListingByAccount(c *gin.Context) {
	account := c.Param("account")
	self.cached(c, "listing/account/"+account, func() (any, error) {
		return self.engine.GetListingByAccount(account)
	})
}

func (self *Server) onGetListings(c *gin.Context) {
	offset, limit := self.pagination(c)

	key := "listings/" + strconv.Itoa(offset) + "/" + strconv.Itoa(limit)
	self.cached(c, key, func() (any, error) {
		return &response.Listings{
			Listings: self.engine.Listings(offset, limit),
			Offset:   offset,
			Limit:    limit,
		}, nil
	})
}

func (self *Server) onGetCategories(c *gin.Context) {
	offset, limit := self.pagination(c)

	key := "categories/" + strconv.Itoa(offset) + "/" + strconv.Itoa(limit)
	self.cached(c, key, func() (any, error) {
		return &response.Categories{
			Categories: self.engine.Categories(offset, limit),
			Offset:     offset,
			Limit:      limit,
		}, nil
	})
}

func (self *Server) onGetCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Bad category id")
		return
	}

	self.cached(c, "category/"+c.Param("id"), func() (any, error) {
		category, err := self.engine.GetCategory(id)
		if err != nil {
			return nil, err
		}
		count, err := self.engine.CategoryCount(id)
		if err != nil {
			return nil, err
		}
		return &response.Category{Category: category, NumListings: count}, nil
	})
}

func (self *Server) onGetCategoryListings(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Bad category id")
		return
	}

	self.cached(c, "category/"+c.Param("id")+"/listings", func() (any, error) {
		listings, err := self.engine.CategoryListings(id)
		if err != nil {
			return nil, err
		}
		return &response.Listings{Listings: listings, Limit: len(listings)}, nil
	})
}

func (self *Server) onGetGuardians(c *gin.Context) {
	c.JSON(http.StatusOK, &response.Guardians{Guardians: self.engine.Guardians()})
}

func (self *Server) onGetStats(c *gin.Context) {
	c.JSON(http.StatusOK, &response.Stats{
		NumListings:   self.engine.NumListings(),
		DisabledCount: self.engine.DisabledCount(),
		ListingFee:    self.engine.ListingFee().String(),
	})
}
