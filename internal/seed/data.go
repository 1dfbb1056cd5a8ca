package seed

import (
	"petcare15/internal/utils"
	"petcare15/pkg/types"
)

// Sample returns the demo data set. Approved applications have their
// customer included, keyed the same way an approval would create it.
func Sample() *Dataset {
	return &Dataset{
		Updates: []*types.Update{
			{ID: 1, Update: "Fifteen is fully booked."},
			{ID: 2, Update: "Misa is new."},
		},
		Contact: &types.Contact{
			PhoneNumbers:  []string{"+1234567890"},
			Email:         "info@petcare15.com",
			GoogleMapsURL: "https://www.google.com/maps/search/?api=1&query=San+Jose,+CA",
		},
		Profiles:     sampleProfiles(),
		Applications: sampleApplications(),
		Customers:    sampleCustomers(),
	}
}

func sampleProfiles() []*types.Profile {
	return []*types.Profile{
		{
			ID:               "fifteen",
			Name:             "Fifteen",
			ProfileThumbnail: "profile1.PNG",
			ProfileFullImage: "profile1.PNG",
			AboutMe:          "A little about me. I'm a happy little dog with a big heart. I'm shy around other dogs and more comfortable with human friends. I need at least 5 treats per day.",
			Available:        true,
			Breed:            "Maltipoo",
			HeightCm:         utils.Float64Ptr(30),
			WeightKg:         utils.Float64Ptr(10),
			HarnessSize:      "XS",
			Highlights:       "Friendly",
			Review: types.Review{
				Link: "https://littlequeen.petcare15.com/",
				Samples: []types.ReviewSample{
					{
						Text: "Fifteen ignored me the whole time she was with me. But I am not worthy of her attention! A+ dog.",
						Link: "https://littlequeen.petcare15.com/review/1",
					},
					{
						Text: "It took me 3 tries to schedule an appointment with 15 due to how popular she is. Not surprised, because she was a blast to hang out with. Non-stop pets and treats. The only sad part is when the time was up.",
						Link: "https://littlequeen.petcare15.com/review/2",
					},
				},
			},
			IndoorServices:  "Baths, naps, treats",
			OutdoorServices: "Walks, dog parks",
			Gallery:         []string{"fifteen1.JPG", "fifteen2.jpeg", "fifteen3.jpeg"},
		},
		{
			ID:               "misamisa",
			Name:             "Misa Misa",
			ProfileThumbnail: "profile2.PNG",
			ProfileFullImage: "profile2.PNG",
			Available:        true,
			Breed:            "Shi Tzu",
			HeightCm:         utils.Float64Ptr(30),
			WeightKg:         utils.Float64Ptr(10),
			HarnessSize:      "S",
			Review: types.Review{
				Link: "https://misamisa.petcare15.com",
				Samples: []types.ReviewSample{
					{
						Text: "It took me 3 tries to schedule an appointment with Misa due to how popular she is. Not surprised, because she was a blast to hang out with. Non-stop pets and treats. The only sad part is when the time was up.",
						Link: "https://misamisa.petcare15.com/review/1",
					},
				},
			},
			IndoorServices:  "Naps, treats",
			OutdoorServices: "Walks, dog parks, car ride",
			SpecialGallery: types.SpecialGallery{
				Description: "Movie",
				Gallery:     []string{"misa.mov"},
			},
			Gallery: []string{"misa1.jpeg", "misa2.JPG", "misa3.jpeg", "misa4.jpeg", "misa5.jpeg", "misa6.jpeg"},
		},
		{
			ID:               "davidjackson",
			Name:             "David Jackson",
			ProfileThumbnail: "profile3.jpeg",
			ProfileFullImage: "profile3.jpeg",
			Breed:            "White",
			HeightCm:         utils.Float64Ptr(30),
			WeightKg:         utils.Float64Ptr(10),
			Highlights:       "Smart",
		},
	}
}

func sampleApplications() []*types.Application {
	const note = "How long is the wait time for approval?"

	return []*types.Application{
		{
			ID:          "1",
			Name:        "Person A",
			PhoneNumber: "1234567891",
			Email:       "persona@gmail.com",
			References: types.References{
				CompanyName1:          "abc",
				CompanyPhoneNumber1:   "1234567890",
				CompanyName1Confirmed: true,
				CompanyName2:          "def",
				CompanyPhoneNumber2:   "1234567890",
				CompanyName2Confirmed: true,
			},
			Status: types.ApplicationStatusApproved,
		},
		{
			ID:                 "2",
			Name:               "Person B",
			PhoneNumber:        "1234567892",
			Email:              "personb@gmail.com",
			SelfieImage:        "selfie.jpg",
			DriverLicenseImage: "license.jpg",
			Status:             types.ApplicationStatusApproved,
			Note:               note,
		},
		{
			ID:          "3",
			Name:        "Person C",
			PhoneNumber: "1234567893",
			Email:       "personc@gmail.com",
			References: types.References{
				CompanyName1:        "abc",
				CompanyPhoneNumber1: "1234567890",
				CompanyName2:        "def",
				CompanyPhoneNumber2: "1234567890",
			},
			Status: types.ApplicationStatusRejected,
			Note:   note,
		},
		{
			ID:          "4",
			Name:        "Person D",
			PhoneNumber: "1234567894",
			Email:       "persond@gmail.com",
			References: types.References{
				CompanyName1:        "abc",
				CompanyPhoneNumber1: "1234567894",
				CompanyName2:        "def",
				CompanyPhoneNumber2: "1234567894",
			},
			SelfieImage:        "selfie.jpg",
			DriverLicenseImage: "license.jpg",
			Status:             types.ApplicationStatusPending,
			Note:               note,
		},
	}
}

func sampleCustomers() []*types.Customer {
	return []*types.Customer{
		{
			ID:            types.CustomerIDForApplication("1"),
			Name:          "Person A",
			PhoneNumber:   "1234567891",
			ApplicationID: "1",
			Profiles: []types.CustomerProfile{
				{ProfileID: "fifteen", VisitorCount: 2, PositiveExperience: true, Charitable: true},
				{ProfileID: "misamisa", VisitorCount: 2, PositiveExperience: true},
			},
		},
		{
			ID:            types.CustomerIDForApplication("2"),
			Name:          "Person B",
			PhoneNumber:   "1234567892",
			ApplicationID: "2",
			Profiles: []types.CustomerProfile{
				{ProfileID: "misamisa", VisitorCount: 5, Charitable: true},
			},
		},
	}
}
