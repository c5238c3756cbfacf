package schwab

import "context"

// GetPreferences fetches the caller's account and streamer preferences.
// The returned UserPreferences.StreamerInfo entries carry the session
// descriptor StreamSession is built from.
func (c *RestClient) GetPreferences(ctx context.Context) (UserPreferences, error) {
	var out UserPreferences
	if err := c.get(ctx, TraderBaseURL+"/userPreference", nil, &out); err != nil {
		return UserPreferences{}, err
	}
	if len(out.StreamerInfo) == 0 {
		return UserPreferences{}, &PreferencesMissingStreamerError{}
	}
	return out, nil
}
