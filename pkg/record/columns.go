package record

// Column names of the input contract.
const (
	ColName         = "twitter_name"
	ColLocation     = "twitter_location"
	ColTimeZone     = "twitter_time_zone"
	ColCreatedAt    = "twitter_created_at"
	ColProfileImage = "twitter_profile_image"

	ColFollowers = "twitter_followers_count"
	ColHIndex    = "hindex"

	ColAverageReach      = "twitter_audience_average_Reach"
	ColPositiveSentiment = "twitter_audience_positive_sentiment_percent"
	ColNegativeSentiment = "twitter_audience_negative_sentiment_percent"
	ColAverageImpact     = "twitter_audience_average_Impact"

	ColMale           = "twitter_audience_male_percent"
	ColFemale         = "twitter_audience_female_percent"
	ColOrganisational = "twitter_audience_organisational"
	ColIndividuals    = "twitter_audience_individuals"

	ColInstagramFollowers = "instagram_followers"
	ColInstagramPosts     = "instagram_posts"

	ColYTAvgComments     = "youtube_avg_comments"
	ColYTAvgDislikes     = "youtube_avg_dislikes"
	ColYTAvgLikes        = "youtube_avg_likes"
	ColYTAvgViews        = "youtube_avg_views"
	ColYTChannelVideos   = "yt_channel_video_count"
	ColYTChannelComments = "yt_channel_comment_count"
	ColYTChannelViews    = "yt_channel_view_count"
)

// AgeColumns are the input columns backing [AgeGroups], in the same order.
var AgeColumns = [8]string{"0 to 9", "10 to 17", "18-24", "25-34", "35-44", "45-54", "55-64", "65+"}

// RequiredColumns lists every column that must appear in the header.
var RequiredColumns = []string{
	ColName,
	ColFollowers,
	ColHIndex,
	ColAverageReach,
	ColPositiveSentiment,
	ColNegativeSentiment,
	ColAverageImpact,
	ColMale,
	ColFemale,
	ColOrganisational,
	ColIndividuals,
	ColInstagramFollowers,
	ColInstagramPosts,
	ColYTChannelVideos,
}
