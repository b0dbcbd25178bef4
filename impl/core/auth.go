package core

import (
	"PerfDash/entity"
	"fmt"
)

// AuthenticateByToken resolves an API key into the dashboard user. The key
// from the listen config is always accepted; other keys are checked against
// the repository and cached.
func (c *Core) AuthenticateByToken(token string) (*entity.UserAuth, error) {
	username, err := c.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	user := &entity.UserAuth{
		Username: username,
		Token:    token,
	}
	if err = user.Bind(nil); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Core) ValidateToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("empty token")
	}
	if c.authKey != "" && token == c.authKey {
		return entity.AdminUser, nil
	}

	c.keysMu.RLock()
	username, ok := c.keys[token]
	c.keysMu.RUnlock()
	if ok {
		return username, nil
	}

	if c.repo == nil {
		return "", fmt.Errorf("repository is not set")
	}
	username, err := c.repo.CheckApiKey(token)
	if err != nil {
		return "", fmt.Errorf("check api key: %w", err)
	}

	c.keysMu.Lock()
	c.keys[token] = username
	c.keysMu.Unlock()
	return username, nil
}

func (c *Core) GenerateApiKey(username string) (string, error) {
	if c.repo == nil {
		return "", fmt.Errorf("repository is not set")
	}

	apiKey, err := c.repo.GenerateApiKey(username)
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	c.keysMu.Lock()
	c.keys[apiKey] = username
	c.keysMu.Unlock()
	return apiKey, nil
}
