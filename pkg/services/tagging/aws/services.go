package aws

// SupportedServices lists the service filter names the controller
// registers, in scan order. It needs no credentials, so the HTTP and CLI
// surfaces can report it without touching the provider.
func SupportedServices() []string {
	return []string{
		"ec2",
		"s3",
		"lambda",
		"rds",
		"dynamodb",
		"ecs",
		"eks",
		"elasticache",
		"elb",
		"sns",
		"sqs",
		"stepfunctions",
		"secretsmanager",
		"efs",
	}
}
