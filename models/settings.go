package models

// Settings holds the collaborator credentials the pipeline needs.
type Settings struct {
	Credentials map[string]string `json:"credentials"`
}

func (s *Settings) GetAWSRegion() string {
	return s.Credentials["aws_region"]
}

func (s *Settings) GetS3Bucket() string {
	return s.Credentials["s3_bucket"]
}
