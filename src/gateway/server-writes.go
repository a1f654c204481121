package gateway

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/dapplist/registry/src/gateway/request"
	"github.com/dapplist/registry/src/gateway/response"
	. "github.com/dapplist/registry/src/utils/logger"

	"github.com/gin-gonic/gin"
)

func parseDeposit(s string) (out *big.Int, ok bool) {
	if s == "" {
		return big.NewInt(0), true
	}
	out, ok = new(big.Int).SetString(s, 10)
	if !ok || out.Sign() < 0 {
		return nil, false
	}
	return out, true
}

func (self *Server) onSubmitListing(c *gin.Context) {
	var in = new(request.SubmitListing)
	err := c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	deposit, ok := parseDeposit(in.Deposit)
	if !ok {
		LOGE(c, nil, http.StatusBadRequest).Debug("Bad deposit amount")
		return
	}

	token, err := self.engine.Create(&in.Listing, caller(c), deposit)
	if err != nil {
		LOGE(c, err, statusFor(err)).Debug("Create rejected")
		return
	}

	// Commit is asynchronous, the outcome arrives as a notification
	c.JSON(http.StatusAccepted, &response.SubmitListing{Token: token})
}

func (self *Server) onUpdateListing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Bad listing id")
		return
	}

	var in = new(request.SubmitListing)
	err = c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	deposit, ok := parseDeposit(in.Deposit)
	if !ok {
		LOGE(c, nil, http.StatusBadRequest).Debug("Bad deposit amount")
		return
	}

	listing, err := self.engine.Update(id, &in.Listing, caller(c), deposit)
	if err != nil {
		LOGE(c, err, statusFor(err)).Debug("Update rejected")
		return
	}

	self.cache.Flush()
	c.JSON(http.StatusOK, listing)
}

func (self *Server) onDisableListing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Bad listing id")
		return
	}

	listing, err := self.engine.Disable(id, caller(c))
	if err != nil {
		LOGE(c, err, statusFor(err)).Debug("Disable rejected")
		return
	}

	self.cache.Flush()
	c.JSON(http.StatusOK, listing)
}

func (self *Server) onAddCategory(c *gin.Context) {
	var in = new(request.AddCategory)
	err := c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	category, err := self.engine.AddCategory(in.Slug, in.Title, caller(c))
	if err != nil {
		LOGE(c, err, statusFor(err)).Debug("Add category rejected")
		return
	}

	self.cache.Flush()
	c.JSON(http.StatusCreated, category)
}

func (self *Server) onAddGuardian(c *gin.Context) {
	var in = new(request.SetGuardian)
	err := c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	err = self.engine.AddGuardian(in.Account, caller(c))
	if err != nil {
		LOGE(c, err, statusFor(err)).Debug("Add guardian rejected")
		return
	}

	c.Status(http.StatusNoContent)
}

func (self *Server) onRemoveGuardian(c *gin.Context) {
	err := self.engine.RemoveGuardian(c.Param("account"), caller(c))
	if err != nil {
		LOGE(c, err, statusFor(err)).Debug("Remove guardian rejected")
		return
	}

	c.Status(http.StatusNoContent)
}

func (self *Server) onSetDisabledCount(c *gin.Context) {
	var in = new(request.SetDisabledCount)
	err := c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	err = self.engine.SetDisabledCount(in.Count, caller(c))
	if err != nil {
		LOGE(c, err, statusFor(err)).Debug("Set disabled count rejected")
		return
	}

	c.Status(http.StatusNoContent)
}
